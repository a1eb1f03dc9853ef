package dynamo

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-anon-inbox/internal/config"
)

// API is the subset of *dynamodb.Client used by the repositories and Bootstrap.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Conn is the explicitly constructed storage handle shared by all repositories.
// Connect is idempotent: the first successful call builds the client and later
// calls return it. A failed attempt is not cached, so the next call retries.
type Conn struct {
	mu     sync.Mutex
	api    API
	dialer func(ctx context.Context) (API, error)
}

// NewConn returns a lazily connecting handle configured from cfg.
func NewConn(cfg *config.Config) *Conn {
	return &Conn{dialer: func(ctx context.Context) (API, error) {
		client, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}}
}

// NewStaticConn wraps an already constructed client (or a fake in tests).
func NewStaticConn(api API) *Conn {
	return &Conn{api: api}
}

// Connect returns the shared client, creating it on first use.
func (c *Conn) Connect(ctx context.Context) (API, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api != nil {
		return c.api, nil
	}
	if c.dialer == nil {
		return nil, fmt.Errorf("dynamo: no client configured")
	}
	api, err := c.dialer(ctx)
	if err != nil {
		return nil, err
	}
	c.api = api
	return api, nil
}

// newClient creates a DynamoDB client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint so all traffic goes to the local instance.
func newClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	clientOpts := []func(*dynamodb.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return dynamodb.NewFromConfig(awsCfg, clientOpts...), nil
}
