package providerRepo

import (
	"errors"

	"clearheadspace/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no provider matches the given identifier.
var ErrNotFound = errors.New("provider not found")

// ProviderSearchCriteria defines criteria for a provider catalog search.
type ProviderSearchCriteria struct {
	Type       string // "therapist" or "buddy"; empty matches both
	Query      string // matched against name, title and specialties
	ActiveOnly bool
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAllActive retrieves all active providers in catalog order.
	GetAllActive() ([]models.Provider, error)
	// Search performs a catalog search based on the given criteria.
	Search(criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// UpdateWithDocument patches a provider document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// IncrementTotalBookings atomically bumps the provider's booking counter.
	IncrementTotalBookings(id string) error
	// RecordCompletedSession atomically increments the completed-session
	// counter and adds amount to lifetime revenue in a single update.
	RecordCompletedSession(id string, amount float64) error
}
