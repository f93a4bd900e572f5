package httphandler

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/marketplace/marketplace"
)

type saleMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

type salePrice struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type sale struct {
	SaleId            string       `json:"saleId"`
	TokenId           string       `json:"tokenId"`
	CollectionAddress string       `json:"collectionAddress"`
	Price             salePrice    `json:"price"`
	SellerAddress     string       `json:"sellerAddress"`
	Metadata          saleMetadata `json:"metadata"`
}

type listSalesResult struct {
	Sales []sale `json:"sales"`
}

type listSalesResponse = HttpResponse[listSalesResult]

func (h *HttpHandler) ListSales(ctx *fiber.Ctx) (err error) {
	records, err := h.usecase.ListOpenSales(ctx.UserContext())
	if err != nil {
		if errors.Is(err, errs.Aggregation) {
			return errs.WithPublicMessage(err, "marketplace aggregation failed")
		}
		return errors.Wrap(err, "error during ListOpenSales")
	}

	sales := lo.Map(records, func(record marketplace.SaleRecord, _ int) sale {
		return sale{
			SaleId:            record.SaleId,
			TokenId:           record.TokenId,
			CollectionAddress: record.CollectionAddress,
			Price: salePrice{
				Amount: record.PriceMinor.String(),
				Denom:  record.Denom,
			},
			SellerAddress: record.SellerAddress,
			Metadata: saleMetadata{
				Name:        record.Metadata.Name,
				Description: record.Metadata.Description,
				Image:       record.Metadata.Image,
				Attributes:  record.Metadata.Attributes,
			},
		}
	})

	resp := listSalesResponse{
		Result: &listSalesResult{
			Sales: sales,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
