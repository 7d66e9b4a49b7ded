package services

import (
	"context"
	"eghl/entity"
)

type Database interface {
	WriteLogMessage(ctx context.Context, data Data) error
	SavePurchaseRecord(ctx context.Context, record *entity.PurchaseRecord) error
	GetPurchaseRecord(ctx context.Context, paymentId string) (*entity.PurchaseRecord, error)
}

type Data interface {
	DataType() string
}
