package services

import (
	"context"
	"eghl/entity"
)

type Payments interface {
	Purchase(ctx context.Context, request *entity.PurchaseRequest) (*entity.TransactionOutcome, error)
}
