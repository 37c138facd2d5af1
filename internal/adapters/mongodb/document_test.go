package mongodb_adapter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"tool-catalog-service/internal/core/domain"
	"tool-catalog-service/pkg/mongodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDocumentMapping_RoundTripKeepsLegacyStatus(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tool := domain.Tool{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Tile Cutter",
		Category: domain.CategoryConstruction,
		Location: domain.Location{City: "Colombo", Area: "Dehiwala"},
		Status:   "borrowed",
		BorrowingTerms: domain.BorrowingTerms{
			MaxDurationDays: 3,
			Deposit:         2500,
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	doc, err := documentFromDomain(tool)
	require.NoError(t, err)
	assert.Empty(t, doc.Availability)
	assert.Equal(t, []string{}, doc.Tags)

	back := doc.toDomain()
	assert.Equal(t, tool.ID, back.ID)
	assert.Equal(t, domain.AvailabilityBorrowed, back.EffectiveAvailability())
	assert.Equal(t, 3, back.BorrowingTerms.MaxDurationDays)
	assert.True(t, created.Equal(back.CreatedAt))
}

func TestDocumentFromDomain_RejectsForeignID(t *testing.T) {
	_, err := documentFromDomain(domain.Tool{ID: "tool-1"})
	assert.Error(t, err)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"network label", mongo.CommandError{Code: 0, Labels: []string{"NetworkError"}}, true},
		{"transaction label", mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}, true},
		{"primary stepped down", mongo.CommandError{Code: 189, Name: "PrimarySteppedDown"}, true},
		{"client disconnected", fmt.Errorf("find: %w", mongo.ErrClientDisconnected), true},
		{"deadline", context.DeadlineExceeded, true},
		{"bad query", mongo.CommandError{Code: 2, Name: "BadValue"}, false},
		{"plain", errors.New("boom"), false},
		{"cancelled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.Equal(t, tt.transient, domain.IsTransient(got))
			assert.Contains(t, got.Error(), tt.err.Error())
		})
	}
}

func TestToolCollection_WrapMarksConnectorSuspect(t *testing.T) {
	marked := 0
	collection := NewToolCollection(nil, func() { marked++ })

	err := collection.wrap("find tools", mongo.CommandError{Labels: []string{"NetworkError"}})
	assert.True(t, domain.IsTransient(err))
	assert.Equal(t, 1, marked)

	err = collection.wrap("find tools", errors.New("syntax"))
	assert.False(t, domain.IsTransient(err))
	assert.Equal(t, 1, marked)
}

func TestConnector_AcquireFailureIsStoreUnavailable(t *testing.T) {
	connector := NewConnector(ConnectorConfig{Database: "toolshare", Collection: "tools"})
	connector.connect = func(ctx context.Context, _ mongodb.Config) (*mongo.Client, error) {
		return nil, errors.New("connection refused")
	}

	_, err := connector.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	status := connector.Status(context.Background())
	assert.False(t, status.Connected)
	assert.Equal(t, "connection refused", status.Error)
	assert.Equal(t, "mongodb", status.Driver)
}
