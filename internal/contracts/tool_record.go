package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"tool-catalog-service/internal/core/domain"
)

const (
	ToolRecordType    = "ToolRecord"
	ToolRecordVersion = "1.0.0"

	defaultMaxDurationDays = 7
)

type locationRecord struct {
	City       string `json:"city"`
	Area       string `json:"area"`
	PostalCode string `json:"postalCode,omitempty"`
}

type ownerRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type borrowingTermsRecord struct {
	MaxDuration  *int    `json:"maxDuration,omitempty"`
	Deposit      float64 `json:"deposit,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

// toolRecord - формат записи в файлах начального наполнения
type toolRecord struct {
	ID             string               `json:"_id,omitempty"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	Condition      string               `json:"condition,omitempty"`
	Location       locationRecord       `json:"location"`
	Owner          ownerRecord          `json:"owner"`
	Availability   string               `json:"availability,omitempty"`
	Status         string               `json:"status,omitempty"`
	BorrowingTerms borrowingTermsRecord `json:"borrowingTerms"`
	Images         []string             `json:"images,omitempty"`
	Tags           []string             `json:"tags,omitempty"`
	CreatedAt      *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time           `json:"updatedAt,omitempty"`
}

// DecodeToolRecords разбирает JSON-массив записей. Каждая запись проверяется
// по схеме ToolRecord/1.0.0, ошибка указывает индекс записи.
// Availability и status переносятся как есть: записи без availability
// остаются "старыми".
func DecodeToolRecords(data []byte) ([]domain.Tool, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tool records must be a JSON array: %w", err)
	}

	tools := make([]domain.Tool, 0, len(raw))
	for i, item := range raw {
		if err := Validate(ToolRecordType, ToolRecordVersion, item); err != nil {
			return nil, fmt.Errorf("tool record #%d: %w", i, err)
		}

		var rec toolRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("tool record #%d: %w", i, err)
		}
		tools = append(tools, rec.toDomain())
	}
	return tools, nil
}

func (r toolRecord) toDomain() domain.Tool {
	condition := domain.Condition(r.Condition)
	if condition == "" {
		condition = domain.ConditionGood
	}

	maxDuration := defaultMaxDurationDays
	if r.BorrowingTerms.MaxDuration != nil {
		maxDuration = *r.BorrowingTerms.MaxDuration
	}

	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}

	tool := domain.Tool{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Category:    domain.Category(r.Category),
		Condition:   condition,
		Location: domain.Location{
			City:       strings.TrimSpace(r.Location.City),
			Area:       strings.TrimSpace(r.Location.Area),
			PostalCode: strings.TrimSpace(r.Location.PostalCode),
		},
		Owner: domain.Owner{
			Name:  strings.TrimSpace(r.Owner.Name),
			Email: strings.ToLower(strings.TrimSpace(r.Owner.Email)),
			Phone: strings.TrimSpace(r.Owner.Phone),
		},
		Availability: domain.Availability(r.Availability),
		Status:       r.Status,
		BorrowingTerms: domain.BorrowingTerms{
			MaxDurationDays: maxDuration,
			Deposit:         r.BorrowingTerms.Deposit,
			Instructions:    strings.TrimSpace(r.BorrowingTerms.Instructions),
		},
		Images: append([]string{}, r.Images...),
		Tags:   tags,
	}
	if r.CreatedAt != nil {
		tool.CreatedAt = r.CreatedAt.UTC()
	}
	if r.UpdatedAt != nil {
		tool.UpdatedAt = r.UpdatedAt.UTC()
	}
	return tool
}
