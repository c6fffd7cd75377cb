package sales

import (
	"context"
	"fmt"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

const saleListLimit = 500

// SaleUseCase lee ventas completadas y genera sus facturas.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	invoices InvoiceGenerator
}

// NewSaleUseCase crea el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, invoices InvoiceGenerator) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, invoices: invoices}
}

// List devuelve las últimas ventas, la más nueva primero.
func (uc *SaleUseCase) List(ctx context.Context) ([]*entity.Sale, error) {
	return uc.saleRepo.List(ctx, repository.SaleFilter{Limit: saleListLimit})
}

// Detail devuelve una venta con sus líneas o domain.ErrNotFound.
func (uc *SaleUseCase) Detail(ctx context.Context, id string) (*dto.SaleDetail, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &dto.SaleDetail{Sale: sale, Items: items}, nil
}

// Invoice genera la venta como PDF llamado invoice_<number>.pdf.
func (uc *SaleUseCase) Invoice(ctx context.Context, id string) (*dto.InvoiceFile, error) {
	detail, err := uc.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.invoices.GenerateInvoice(detail.Sale, detail.Items)
	if err != nil {
		return nil, fmt.Errorf("generate invoice: %w", err)
	}
	return &dto.InvoiceFile{
		Filename: fmt.Sprintf("invoice_%d.pdf", detail.Sale.Number),
		Content:  content,
	}, nil
}
