package mongodb_adapter

import (
	"fmt"
	"time"
	"tool-catalog-service/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type locationDocument struct {
	City       string `bson:"city"`
	Area       string `bson:"area"`
	PostalCode string `bson:"postalCode,omitempty"`
}

type ownerDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone,omitempty"`
}

type borrowingTermsDocument struct {
	MaxDuration  int     `bson:"maxDuration"`
	Deposit      float64 `bson:"deposit"`
	Instructions string  `bson:"instructions,omitempty"`
}

// toolDocument - документ коллекции tools.
// availability и status пишутся только если заданы: старые документы их не содержат.
type toolDocument struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	Name           string                 `bson:"name"`
	Description    string                 `bson:"description"`
	Category       string                 `bson:"category"`
	Condition      string                 `bson:"condition"`
	Location       locationDocument       `bson:"location"`
	Owner          ownerDocument          `bson:"owner"`
	Availability   string                 `bson:"availability,omitempty"`
	Status         string                 `bson:"status,omitempty"`
	BorrowingTerms borrowingTermsDocument `bson:"borrowingTerms"`
	Images         []string               `bson:"images"`
	Tags           []string               `bson:"tags"`
	CreatedAt      time.Time              `bson:"createdAt"`
	UpdatedAt      time.Time              `bson:"updatedAt"`
}

func (d toolDocument) toDomain() domain.Tool {
	tool := domain.Tool{
		Name:        d.Name,
		Description: d.Description,
		Category:    domain.Category(d.Category),
		Condition:   domain.Condition(d.Condition),
		Location: domain.Location{
			City:       d.Location.City,
			Area:       d.Location.Area,
			PostalCode: d.Location.PostalCode,
		},
		Owner: domain.Owner{
			Name:  d.Owner.Name,
			Email: d.Owner.Email,
			Phone: d.Owner.Phone,
		},
		Availability: domain.Availability(d.Availability),
		Status:       d.Status,
		BorrowingTerms: domain.BorrowingTerms{
			MaxDurationDays: d.BorrowingTerms.MaxDuration,
			Deposit:         d.BorrowingTerms.Deposit,
			Instructions:    d.BorrowingTerms.Instructions,
		},
		Images:    d.Images,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if !d.ID.IsZero() {
		tool.ID = d.ID.Hex()
	}
	return tool
}

func documentFromDomain(tool domain.Tool) (toolDocument, error) {
	doc := toolDocument{
		Name:        tool.Name,
		Description: tool.Description,
		Category:    string(tool.Category),
		Condition:   string(tool.Condition),
		Location: locationDocument{
			City:       tool.Location.City,
			Area:       tool.Location.Area,
			PostalCode: tool.Location.PostalCode,
		},
		Owner: ownerDocument{
			Name:  tool.Owner.Name,
			Email: tool.Owner.Email,
			Phone: tool.Owner.Phone,
		},
		Availability: string(tool.Availability),
		Status:       tool.Status,
		BorrowingTerms: borrowingTermsDocument{
			MaxDuration:  tool.BorrowingTerms.MaxDurationDays,
			Deposit:      tool.BorrowingTerms.Deposit,
			Instructions: tool.BorrowingTerms.Instructions,
		},
		Images:    nonNil(tool.Images),
		Tags:      nonNil(tool.Tags),
		CreatedAt: tool.CreatedAt,
		UpdatedAt: tool.UpdatedAt,
	}

	if tool.ID != "" {
		id, err := primitive.ObjectIDFromHex(tool.ID)
		if err != nil {
			return toolDocument{}, fmt.Errorf("tool id %q is not a valid ObjectID: %w", tool.ID, err)
		}
		doc.ID = id
	}
	return doc, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
