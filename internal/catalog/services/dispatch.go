package services

import (
	"context"
	"fmt"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/pkg/client/gitlab"
	"github.com/Evolveum/integration-catalog-sub000/pkg/client/jenkins"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/logger"
	"github.com/Evolveum/integration-catalog-sub000/pkg/metrics"
)

// PublishFile is one file of a connector source submission
type PublishFile struct {
	Path    string
	Content string
}

// DispatchService publishes a new implementation version: it creates the
// remote source project, commits the submitted files and triggers the CI
// build. The steps fail independently; nothing is rolled back. A commit or
// trigger failure leaves the created project behind for external cleanup.
type DispatchService interface {
	Publish(ctx context.Context, implementationName string, version *dbapi.ImplementationVersion, framework dbapi.FrameworkEnum, files []PublishFile) (string, *errors.ServiceError)
}

var _ DispatchService = &dispatchService{}

type dispatchService struct {
	gitlabConfig  *gitlab.Config
	gitlabClient  *gitlab.Client
	jenkinsClient *jenkins.Client
	jenkinsConfig *jenkins.Config
}

func NewDispatchService(gitlabConfig *gitlab.Config, gitlabClient *gitlab.Client, jenkinsClient *jenkins.Client, jenkinsConfig *jenkins.Config) *dispatchService {
	return &dispatchService{
		gitlabConfig:  gitlabConfig,
		gitlabClient:  gitlabClient,
		jenkinsClient: jenkinsClient,
		jenkinsConfig: jenkinsConfig,
	}
}

func (d *dispatchService) Publish(ctx context.Context, implementationName string, version *dbapi.ImplementationVersion,
	framework dbapi.FrameworkEnum, files []PublishFile) (string, *errors.ServiceError) {

	ulog := logger.NewUHCLogger(ctx)

	if d.jenkinsConfig.EnableMock {
		ulog.Infof("jenkins mock enabled, skipping dispatch of version %s", version.ID)
		return "mock://queue/" + version.ID, nil
	}

	var project *gitlab.Project
	if d.gitlabConfig.EnableMock {
		ulog.Infof("gitlab mock enabled, fabricating project for version %s", version.ID)
		project = &gitlab.Project{
			Name:              implementationName,
			PathWithNamespace: "mock/" + implementationName,
			WebURL:            "mock://gitlab/" + implementationName,
			HTTPURLToRepo:     "mock://gitlab/" + implementationName + ".git",
			DefaultBranch:     d.gitlabConfig.DefaultBranch,
		}
	} else {
		var serr *errors.ServiceError
		project, serr = d.gitlabClient.CreateProject(ctx, implementationName)
		if serr != nil {
			metrics.IncDispatchFailureCount(metrics.StepCreateProject)
			return "", serr
		}
		ulog.Infof("created project %s for version %s", project.PathWithNamespace, version.ID)

		actions := make([]gitlab.CommitAction, 0, len(files))
		for _, f := range files {
			actions = append(actions, gitlab.CommitAction{
				Action:   "create",
				FilePath: f.Path,
				Content:  f.Content,
			})
		}
		message := fmt.Sprintf("Add connector sources for %s %s", implementationName, version.ConnectorVersion)
		if serr := d.gitlabClient.CommitFiles(ctx, project.ID, message, actions); serr != nil {
			metrics.IncDispatchFailureCount(metrics.StepCommitFiles)
			return "", serr
		}
	}

	// The version id is the correlation token: the CI job echoes it back on
	// its completion callback.
	queueURL, serr := d.jenkinsClient.TriggerBuild(ctx, jenkins.BuildParameters{
		RepositoryURL: project.HTTPURLToRepo,
		Branch:        project.DefaultBranch,
		VersionID:     version.ID,
		Framework:     string(framework),
	})
	if serr != nil {
		metrics.IncDispatchFailureCount(metrics.StepTriggerBuild)
		return "", serr
	}
	ulog.Infof("queued build of version %s at %s", version.ID, queueURL)

	version.BrowseLink = project.WebURL
	version.CheckoutLink = project.HTTPURLToRepo

	return queueURL, nil
}
