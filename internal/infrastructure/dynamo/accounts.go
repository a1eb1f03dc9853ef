package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-anon-inbox/internal/domain"
)

// AccountRepo provides typed DynamoDB operations for the accounts table.
// Each account document embeds its inbox as a list attribute.
type AccountRepo struct {
	conn      *Conn
	tableName string
	now       func() time.Time
}

func NewAccountRepo(conn *Conn, tableName string) *AccountRepo {
	return &AccountRepo{conn: conn, tableName: tableName, now: time.Now}
}

// Create inserts a new account. It fails with ErrConflict if the id is already used.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	api, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}
	if a.Messages == nil {
		// list_append cannot extend a NULL attribute, so store an empty list.
		a.Messages = []domain.Message{}
	}
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	_, err = api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": fieldAccountID},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("account %s already exists: %w", a.AccountID, domain.ErrConflict)
	}
	return err
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	api, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	out, err := api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldAccountID, accountID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &a, nil
}

// GetByEmail returns the single account owning email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	accounts, err := r.queryIndex(ctx, indexEmail, fieldEmail, email, 1)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return &accounts[0], nil
}

// ListByUsername returns every account carrying username. Only verified
// accounts are unique on username, so several unverified ones may share it.
func (r *AccountRepo) ListByUsername(ctx context.Context, username string) ([]domain.Account, error) {
	return r.queryIndex(ctx, indexUsername, fieldUsername, username, 0)
}

// Update applies a partial SET on an existing account.
func (r *AccountRepo) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	api, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields[fieldUpdatedAt] = r.now().UTC()
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return err
	}
	ue.Names["#pk"] = fieldAccountID
	_, err = api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldAccountID, accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return err
}

// AppendMessage adds m to the end of the account's inbox in a single write.
func (r *AccountRepo) AppendMessage(ctx context.Context, accountID string, m domain.Message) error {
	api, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}
	av, err := attributevalue.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	now, err := attributevalue.Marshal(r.now().UTC())
	if err != nil {
		return err
	}
	_, err = api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldAccountID, accountID),
		UpdateExpression:    aws.String("SET #m = list_append(if_not_exists(#m, :empty), :msg), #u = :now"),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#m":  fieldMessages,
			"#u":  fieldUpdatedAt,
			"#pk": fieldAccountID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":msg":   &types.AttributeValueMemberL{Value: []types.AttributeValue{av}},
			":now":   now,
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return err
}

// RemoveMessage deletes the message with messageID from the inbox. The write is
// conditioned on the list slot still holding that id, so a concurrent removal
// that shifted the list yields ErrNotFound rather than dropping another message.
func (r *AccountRepo) RemoveMessage(ctx context.Context, accountID, messageID string) error {
	a, err := r.Get(ctx, accountID)
	if err != nil {
		return err
	}
	idx := -1
	for i, m := range a.Messages {
		if m.MessageID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("message not found: %w", domain.ErrNotFound)
	}

	api, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}
	now, err := attributevalue.Marshal(r.now().UTC())
	if err != nil {
		return err
	}
	slot := fmt.Sprintf("#m[%d]", idx)
	_, err = api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldAccountID, accountID),
		UpdateExpression:    aws.String(fmt.Sprintf("REMOVE %s SET #u = :now", slot)),
		ConditionExpression: aws.String(fmt.Sprintf("%s.#mid = :id", slot)),
		ExpressionAttributeNames: map[string]string{
			"#m":   fieldMessages,
			"#mid": fieldMessageID,
			"#u":   fieldUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id":  &types.AttributeValueMemberS{Value: messageID},
			":now": now,
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("message not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *AccountRepo) queryIndex(ctx context.Context, index, attr, value string, limit int32) ([]domain.Account, error) {
	api, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	out, err := api.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var accounts []domain.Account
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &accounts); err != nil {
		return nil, fmt.Errorf("unmarshal accounts: %w", err)
	}
	return accounts, nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return err != nil && errors.As(err, &ccf)
}
