package internal

import (
	"context"
	"eghl/config"
	"eghl/entity"
	"eghl/services"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"log"
	"time"
)

const (
	collectionLog       = "payment_log"
	collectionPurchases = "purchases"
)

var ErrRecordNotFound = errors.New("record not found")

type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

// Ping checks the server is reachable, retrying with exponential backoff until ctx is done.
// It is meant for startup only.
func (m *MongoDB) Ping(ctx context.Context) error {
	exp := backoff.NewExponentialBackOff()
	exp.MaxElapsedTime = 30 * time.Second
	operation := func() error {
		connection, err := m.connect(ctx)
		if err != nil {
			return err
		}
		defer m.disconnect(ctx, connection)
		return connection.Ping(ctx, nil)
	}
	notify := func(err error, wait time.Duration) {
		log.Printf("mongodb ping failed: %v; retry in %v", err, wait)
	}
	return backoff.RetryNotify(operation, backoff.WithContext(exp, ctx), notify)
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	err := connection.Disconnect(ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(ctx context.Context, data services.Data) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(ctx, data)
	return err
}

// SavePurchaseRecord upserts the record of a purchase run, keyed by payment id and start time.
func (m *MongoDB) SavePurchaseRecord(ctx context.Context, record *entity.PurchaseRecord) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	filter := bson.D{{Key: "payment_id", Value: record.PaymentId}, {Key: "time_started", Value: record.TimeStarted}}
	set := bson.M{"$set": record}
	collection := connection.Database(m.database).Collection(collectionPurchases)
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "save purchase record")
	}
	return nil
}

// GetPurchaseRecord returns the latest run for a payment id.
func (m *MongoDB) GetPurchaseRecord(ctx context.Context, paymentId string) (*entity.PurchaseRecord, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionPurchases)
	filter := bson.D{{Key: "payment_id", Value: paymentId}}
	opt := options.FindOne().SetSort(bson.D{{Key: "time_started", Value: -1}})
	var record entity.PurchaseRecord
	if err = collection.FindOne(ctx, filter, opt).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}
