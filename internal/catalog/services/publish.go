package services

import (
	"context"
	goerrors "errors"
	"time"

	"gorm.io/gorm"
	gormClause "gorm.io/gorm/clause"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services/phase"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/logger"
	"github.com/Evolveum/integration-catalog-sub000/pkg/metrics"
	coreServices "github.com/Evolveum/integration-catalog-sub000/pkg/services"
)

// error messages recorded on a version may end up in list responses, keep
// them bounded
const maxErrorMessageLen = 2000

// UploadResult identifies the persisted triple and the dispatched build
type UploadResult struct {
	ApplicationID    string
	ImplementationID string
	VersionID        string
	DispatchID       string
}

// PublishService owns the publish lifecycle of the application,
// implementation and version triple. It is the only component that mutates
// their phase columns.
type PublishService interface {
	Upload(ctx context.Context, application *dbapi.Application, implementation *dbapi.Implementation,
		version *dbapi.ImplementationVersion, files []PublishFile) (*UploadResult, *errors.ServiceError)
	CompleteBuild(ctx context.Context, versionID string, bundleName string, connectorVersion string,
		downloadLink string, publishTimeEpochMillis int64) *errors.ServiceError
	FailBuild(ctx context.Context, versionID string, message string) *errors.ServiceError
}

var _ PublishService = &publishService{}

type publishService struct {
	connectionFactory *db.ConnectionFactory
	dispatchService   DispatchService
}

func NewPublishService(connectionFactory *db.ConnectionFactory, dispatchService DispatchService) *publishService {
	return &publishService{
		connectionFactory: connectionFactory,
		dispatchService:   dispatchService,
	}
}

// Upload persists the application, implementation and version atomically
// with the version in in_publish_process, then dispatches the build. The
// version row is visible before any external call is made, so a crash
// between persist and dispatch leaves a recoverable record rather than
// silent loss. A dispatch failure immediately fails the version with the
// dispatch error recorded, and is returned to the caller.
func (k *publishService) Upload(ctx context.Context, application *dbapi.Application, implementation *dbapi.Implementation,
	version *dbapi.ImplementationVersion, files []PublishFile) (*UploadResult, *errors.ServiceError) {

	dbConn := k.connectionFactory.New()

	var serviceErr *errors.ServiceError
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		serviceErr = k.persistTriple(tx, application, implementation, version)
		if serviceErr != nil {
			return serviceErr
		}
		return nil
	})
	if serviceErr != nil {
		return nil, serviceErr
	}
	if err != nil {
		return nil, errors.GeneralError("Unable to persist upload: %s", err)
	}

	metrics.IncUploadCount(string(implementation.Framework))

	queueURL, serviceErr := k.dispatchService.Publish(ctx, implementation.Name, version, implementation.Framework, files)
	if serviceErr != nil {
		if failErr := k.FailBuild(ctx, version.ID, serviceErr.Reason); failErr != nil {
			logger.NewUHCLogger(ctx).Error(failErr)
		}
		return nil, serviceErr
	}

	// browse and checkout links are known only after the project exists
	if err := dbConn.Model(version).
		Updates(map[string]interface{}{"browse_link": version.BrowseLink, "checkout_link": version.CheckoutLink}).Error; err != nil {
		return nil, coreServices.HandleUpdateError("ImplementationVersion", err)
	}

	// the queue handle the CI server acknowledged the build with
	return &UploadResult{
		ApplicationID:    application.ID,
		ImplementationID: implementation.ID,
		VersionID:        version.ID,
		DispatchID:       queueURL,
	}, nil
}

// persistTriple reuses an existing application or implementation of the same
// name, so a new version for a failed or active application lands under its
// existing parents.
func (k *publishService) persistTriple(tx *gorm.DB, application *dbapi.Application,
	implementation *dbapi.Implementation, version *dbapi.ImplementationVersion) *errors.ServiceError {

	var existing dbapi.Application
	err := tx.Where("name = ?", application.Name).First(&existing).Error
	switch {
	case err == nil:
		*application = existing
	case goerrors.Is(err, gorm.ErrRecordNotFound):
		application.ID = api.NewID()
		application.Phase = dbapi.ApplicationPhaseRequested
		if serviceErr := resolveFacets(tx, application); serviceErr != nil {
			return serviceErr
		}
		if err := tx.Create(application).Error; err != nil {
			return coreServices.HandleCreateError("Application", err)
		}
	default:
		return coreServices.HandleGetError("Application", "name", application.Name, err)
	}

	if updated, serviceErr := phase.PerformApplicationOperation(application, phase.SubmitApplication); serviceErr != nil {
		return serviceErr
	} else if updated {
		if err := tx.Model(application).Update("phase", application.Phase).Error; err != nil {
			return coreServices.HandleUpdateError("Application", err)
		}
	}

	var existingImpl dbapi.Implementation
	err = tx.Where("name = ? AND application_id = ?", implementation.Name, application.ID).First(&existingImpl).Error
	switch {
	case err == nil:
		*implementation = existingImpl
	case goerrors.Is(err, gorm.ErrRecordNotFound):
		implementation.ID = api.NewID()
		implementation.ApplicationID = application.ID
		if err := tx.Create(implementation).Error; err != nil {
			return coreServices.HandleCreateError("Implementation", err)
		}
	default:
		return coreServices.HandleGetError("Implementation", "name", implementation.Name, err)
	}

	version.ID = api.NewID()
	version.ImplementationID = implementation.ID
	version.Phase = dbapi.VersionPhaseInPublishProcess
	if err := tx.Create(version).Error; err != nil {
		return coreServices.HandleCreateError("ImplementationVersion", err)
	}

	return nil
}

// resolveFacets reuses existing tag and country rows by their natural keys
// so association inserts reference them instead of colliding
func resolveFacets(tx *gorm.DB, application *dbapi.Application) *errors.ServiceError {
	for i := range application.Tags {
		tag := &application.Tags[i]
		err := tx.Where("name = ?", tag.Name).First(tag).Error
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			tag.ID = api.NewID()
		} else if err != nil {
			return coreServices.HandleGetError("Tag", "name", tag.Name, err)
		}
	}
	for i := range application.Countries {
		country := &application.Countries[i]
		err := tx.Where("code = ?", country.Code).First(country).Error
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			country.ID = api.NewID()
			if country.Name == "" {
				country.Name = country.Code
			}
		} else if err != nil {
			return coreServices.HandleGetError("CountryOfOrigin", "code", country.Code, err)
		}
	}
	return nil
}

// CompleteBuild is the CI success callback. Callbacks are delivered at least
// once; a version that is no longer in_publish_process is left untouched and
// the call reports success. The state check and mutation run under a row
// lock so a racing duplicate callback serializes behind the first.
func (k *publishService) CompleteBuild(ctx context.Context, versionID string, bundleName string,
	connectorVersion string, downloadLink string, publishTimeEpochMillis int64) *errors.ServiceError {

	dbConn := k.connectionFactory.New()

	var serviceErr *errors.ServiceError
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		version, pending, getErr := lockVersion(tx, versionID)
		if getErr != nil {
			serviceErr = getErr
			return getErr
		}
		if !pending {
			metrics.IncBuildCallbackReplayCount()
			return nil
		}

		publishedAt := time.UnixMilli(publishTimeEpochMillis).UTC()
		version.BundleName = bundleName
		version.ConnectorVersion = connectorVersion
		version.DownloadLink = downloadLink
		version.PublishedAt = &publishedAt
		if _, serviceErr = phase.PerformVersionOperation(version, phase.ActivateVersion); serviceErr != nil {
			return serviceErr
		}
		if err := tx.Save(version).Error; err != nil {
			serviceErr = coreServices.HandleUpdateError("ImplementationVersion", err)
			return serviceErr
		}

		application, getAppErr := applicationOfVersion(tx, version)
		if getAppErr != nil {
			serviceErr = getAppErr
			return getAppErr
		}
		if updated, appErr := phase.PerformApplicationOperation(application, phase.ActivateApplication); appErr != nil {
			serviceErr = appErr
			return appErr
		} else if updated {
			if err := tx.Model(application).Update("phase", application.Phase).Error; err != nil {
				serviceErr = coreServices.HandleUpdateError("Application", err)
				return serviceErr
			}
		}

		metrics.IncBuildCallbackCount(metrics.BuildSucceeded)
		metrics.ObservePublishDuration(metrics.BuildSucceeded, time.Since(version.CreatedAt))
		return nil
	})
	if serviceErr != nil {
		return serviceErr
	}
	if err != nil {
		return errors.GeneralError("Unable to complete build of version '%s': %s", versionID, err)
	}
	return nil
}

// FailBuild is the CI failure callback, with the same idempotency gate as
// CompleteBuild. After failing the version it evaluates the cascade from
// current sibling counts: the application fails only when this version is
// the sole version of the sole implementation.
func (k *publishService) FailBuild(ctx context.Context, versionID string, message string) *errors.ServiceError {
	dbConn := k.connectionFactory.New()

	var serviceErr *errors.ServiceError
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		version, pending, getErr := lockVersion(tx, versionID)
		if getErr != nil {
			serviceErr = getErr
			return getErr
		}
		if !pending {
			metrics.IncBuildCallbackReplayCount()
			return nil
		}

		version.ErrorMessage = coreServices.TruncateString(message, maxErrorMessageLen)
		if _, serviceErr = phase.PerformVersionOperation(version, phase.FailVersion); serviceErr != nil {
			return serviceErr
		}
		if err := tx.Save(version).Error; err != nil {
			serviceErr = coreServices.HandleUpdateError("ImplementationVersion", err)
			return serviceErr
		}

		if serviceErr = k.cascadeFailure(tx, version); serviceErr != nil {
			return serviceErr
		}

		metrics.IncBuildCallbackCount(metrics.BuildFailed)
		metrics.ObservePublishDuration(metrics.BuildFailed, time.Since(version.CreatedAt))
		return nil
	})
	if serviceErr != nil {
		return serviceErr
	}
	if err != nil {
		return errors.GeneralError("Unable to fail build of version '%s': %s", versionID, err)
	}
	return nil
}

// cascadeFailure counts all siblings regardless of their state: it asks "is
// this the sole version that ever existed under the sole implementation",
// not "are all siblings also failed".
func (k *publishService) cascadeFailure(tx *gorm.DB, version *dbapi.ImplementationVersion) *errors.ServiceError {
	var siblingVersions int64
	if err := tx.Model(&dbapi.ImplementationVersion{}).
		Where("implementation_id = ?", version.ImplementationID).
		Count(&siblingVersions).Error; err != nil {
		return errors.GeneralError("Unable to count sibling versions of '%s': %s", version.ID, err)
	}
	if siblingVersions != 1 {
		return nil
	}

	var implementation dbapi.Implementation
	if err := tx.Where("id = ?", version.ImplementationID).First(&implementation).Error; err != nil {
		return coreServices.HandleGetError("Implementation", "id", version.ImplementationID, err)
	}

	var siblingImplementations int64
	if err := tx.Model(&dbapi.Implementation{}).
		Where("application_id = ?", implementation.ApplicationID).
		Count(&siblingImplementations).Error; err != nil {
		return errors.GeneralError("Unable to count sibling implementations of '%s': %s", implementation.ID, err)
	}
	if siblingImplementations != 1 {
		return nil
	}

	var application dbapi.Application
	if err := tx.Where("id = ?", implementation.ApplicationID).First(&application).Error; err != nil {
		return coreServices.HandleGetError("Application", "id", implementation.ApplicationID, err)
	}
	if updated, serviceErr := phase.PerformApplicationOperation(&application, phase.FailApplication); serviceErr != nil {
		return serviceErr
	} else if updated {
		if err := tx.Model(&application).Update("phase", application.Phase).Error; err != nil {
			return coreServices.HandleUpdateError("Application", err)
		}
	}
	return nil
}

// lockVersion loads a version under SELECT FOR UPDATE and reports whether it
// is still awaiting its build callback
func lockVersion(tx *gorm.DB, versionID string) (*dbapi.ImplementationVersion, bool, *errors.ServiceError) {
	var version dbapi.ImplementationVersion
	if err := tx.Clauses(gormClause.Locking{Strength: "UPDATE"}).
		Where("id = ?", versionID).
		First(&version).Error; err != nil {
		return nil, false, coreServices.HandleGetError("ImplementationVersion", "id", versionID, err)
	}
	return &version, version.Phase == dbapi.VersionPhaseInPublishProcess, nil
}

// applicationOfVersion walks the ownership tree with explicit queries rather
// than preloaded associations
func applicationOfVersion(tx *gorm.DB, version *dbapi.ImplementationVersion) (*dbapi.Application, *errors.ServiceError) {
	var implementation dbapi.Implementation
	if err := tx.Where("id = ?", version.ImplementationID).First(&implementation).Error; err != nil {
		return nil, coreServices.HandleGetError("Implementation", "id", version.ImplementationID, err)
	}
	var application dbapi.Application
	if err := tx.Where("id = ?", implementation.ApplicationID).First(&application).Error; err != nil {
		return nil, coreServices.HandleGetError("Application", "id", implementation.ApplicationID, err)
	}
	return &application, nil
}
