package availability

import (
	"context"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

// Repository expõe as quatro formas de consulta que a resolução de
// exceções exige, mais as leituras usadas pela expansão do calendário.
//
// FindException devolve (nil, nil) quando não há linha não cancelada
// para a tripla exata; originalID nil é chave distinta (slot avulso
// não colide com exceção recorrente na mesma data).
type Repository interface {
	FindException(
		ctx context.Context,
		clinicianID uint,
		date string,
		originalID *uint,
	) (*models.AvailabilityException, error)

	CreateException(
		ctx context.Context,
		ex *models.AvailabilityException,
	) error

	UpdateException(
		ctx context.Context,
		ex *models.AvailabilityException,
	) error

	GetBlock(
		ctx context.Context,
		clinicianID uint,
		blockID uint,
	) (*models.AvailabilityBlock, error)

	UpdateBlockTimes(
		ctx context.Context,
		clinicianID uint,
		blockID uint,
		startTime string,
		endTime string,
	) error

	ListBlocks(
		ctx context.Context,
		clinicianID uint,
	) ([]models.AvailabilityBlock, error)

	ListExceptionsBetween(
		ctx context.Context,
		clinicianID uint,
		from string,
		to string,
	) ([]models.AvailabilityException, error)
}
