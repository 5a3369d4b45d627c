package services

import (
	"context"
	"io"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/config"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/metrics"
)

// DownloadService resolves a version's download link and streams the
// artifact back. Lifecycle state is not checked: an archived or deprecated
// version's link is still servable as long as it resolves.
type DownloadService interface {
	Resolve(ctx context.Context, versionID string, remoteAddr string, userAgent string) (io.ReadCloser, string, *errors.ServiceError)
}

var _ DownloadService = &downloadService{}

type downloadService struct {
	connectionFactory *db.ConnectionFactory
	versionService    VersionService
	resty             *resty.Client
}

func NewDownloadService(connectionFactory *db.ConnectionFactory, versionService VersionService, catalogConfig *config.CatalogConfig) *downloadService {
	return &downloadService{
		connectionFactory: connectionFactory,
		versionService:    versionService,
		resty:             resty.New().SetTimeout(catalogConfig.DownloadTimeout),
	}
}

func (d *downloadService) Resolve(ctx context.Context, versionID string, remoteAddr string, userAgent string) (io.ReadCloser, string, *errors.ServiceError) {
	version, serviceErr := d.versionService.Get(ctx, versionID)
	if serviceErr != nil {
		return nil, "", serviceErr
	}
	if version.DownloadLink == "" {
		return nil, "", errors.NotFound("ImplementationVersion with id='%s' has no download link", versionID)
	}

	filename, serviceErr := filenameFromLink(version.DownloadLink)
	if serviceErr != nil {
		return nil, "", serviceErr
	}

	resp, err := d.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(version.DownloadLink)
	if err != nil {
		return nil, "", errors.UpstreamDownloadError("Unable to fetch artifact of version '%s': %s", versionID, err)
	}
	if resp.StatusCode() != 200 {
		_ = resp.RawBody().Close()
		return nil, "", errors.UpstreamDownloadError("Artifact host returned status %d for version '%s'", resp.StatusCode(), versionID)
	}

	d.recordDownload(ctx, versionID, remoteAddr, userAgent)
	metrics.IncDownloadRedirectCount()

	return resp.RawBody(), filename, nil
}

// a failed event insert must not lose the download itself
func (d *downloadService) recordDownload(ctx context.Context, versionID string, remoteAddr string, userAgent string) {
	dbConn := d.connectionFactory.New()
	event := &dbapi.DownloadEvent{
		VersionID:  versionID,
		RemoteAddr: remoteAddr,
		UserAgent:  userAgent,
	}
	event.ID = api.NewID()
	_ = dbConn.Create(event).Error
}

// filenameFromLink derives the served filename from the link's last path
// segment
func filenameFromLink(link string) (string, *errors.ServiceError) {
	u, err := url.Parse(link)
	if err != nil {
		return "", errors.UpstreamDownloadError("Malformed download link: %s", err)
	}
	filename := path.Base(u.Path)
	if filename == "." || filename == "/" {
		return "", errors.UpstreamDownloadError("Download link %q has no file segment", link)
	}
	return filename, nil
}
