package interfaces

import (
	"context"

	"os_service_api/internal/domain/entities"
)

// IClientRepository reads the client registry owned by the main application.
// A zero-value client (ID == "") means "not found".
type IClientRepository interface {
	GetByID(ctx context.Context, id string) (entities.Client, error)
}

// ITechnicianRepository reads the technician registry. Same contract as
// IClientRepository.
type ITechnicianRepository interface {
	GetByID(ctx context.Context, id string) (entities.Technician, error)
}
