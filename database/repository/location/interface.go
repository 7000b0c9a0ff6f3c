package locationRepo

import "roomservice/models"

// LocationRepository defines methods for hotel location data access.
type LocationRepository interface {
	GetAll() ([]models.Location, error)
	// GetByID and GetByName return (nil, nil) when nothing matches.
	GetByID(id string) (*models.Location, error)
	GetByName(name string) (*models.Location, error)
	Create(location *models.Location) error
	Rename(id, name string) (*models.Location, error)
	Delete(id string) error
}
