package domain

import (
	"strings"
	"time"
)

// Category - категория инструмента (закрытый список)
type Category string

const (
	CategoryPowerTools        Category = "Power Tools"
	CategoryHandTools         Category = "Hand Tools"
	CategoryGardenTools       Category = "Garden Tools"
	CategoryAutomotive        Category = "Automotive"
	CategoryConstruction      Category = "Construction"
	CategoryElectrical        Category = "Electrical"
	CategoryPlumbing          Category = "Plumbing"
	CategoryCleaning          Category = "Cleaning"
	CategoryKitchenAppliances Category = "Kitchen Appliances"
	CategorySportsRecreation  Category = "Sports & Recreation"
	CategoryOther             Category = "Other"
)

// Categories возвращает все допустимые категории в порядке отображения.
func Categories() []Category {
	return []Category{
		CategoryPowerTools, CategoryHandTools, CategoryGardenTools, CategoryAutomotive,
		CategoryConstruction, CategoryElectrical, CategoryPlumbing, CategoryCleaning,
		CategoryKitchenAppliances, CategorySportsRecreation, CategoryOther,
	}
}

// Condition - состояние инструмента, упорядочено от лучшего к худшему
type Condition string

const (
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionPoor      Condition = "Poor"
)

func Conditions() []Condition {
	return []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}
}

// Availability - доступность инструмента для одалживания
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBorrowed    Availability = "borrowed"
	AvailabilityMaintenance Availability = "maintenance"
	AvailabilityUnavailable Availability = "unavailable"
)

func Availabilities() []Availability {
	return []Availability{AvailabilityAvailable, AvailabilityBorrowed, AvailabilityMaintenance, AvailabilityUnavailable}
}

type Location struct {
	City       string
	Area       string
	PostalCode string
}

type Owner struct {
	Name  string
	Email string
	Phone string
}

type BorrowingTerms struct {
	MaxDurationDays int // в днях
	Deposit         float64
	Instructions    string
}

// Tool - запись каталога. Сервис её только читает.
type Tool struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Condition   Condition
	Location    Location
	Owner       Owner

	// Availability может быть пустой у старых записей, тогда значение лежит в Status
	Availability Availability
	Status       string // legacy

	BorrowingTerms BorrowingTerms
	Images         []string
	Tags           []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAvailability возвращает availability, если оно задано, иначе legacy status,
// иначе "available".
func (t Tool) EffectiveAvailability() Availability {
	if t.Availability != "" {
		return t.Availability
	}
	if status := strings.TrimSpace(t.Status); status != "" {
		return Availability(status)
	}
	return AvailabilityAvailable
}
