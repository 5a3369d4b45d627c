package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	mocket "github.com/selvatico/go-mocket"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

const (
	testVersionID        = "test-version-id"
	testImplementationID = "test-implementation-id"
	testApplicationID    = "test-application-id"
)

type fakeDispatchService struct {
	queueURL string
	err      *errors.ServiceError
	calls    int
}

var _ DispatchService = &fakeDispatchService{}

func (f *fakeDispatchService) Publish(ctx context.Context, implementationName string, version *dbapi.ImplementationVersion,
	framework dbapi.FrameworkEnum, files []PublishFile) (string, *errors.ServiceError) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.queueURL, nil
}

func versionRow(phase dbapi.VersionPhaseEnum) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":                testVersionID,
		"phase":             string(phase),
		"implementation_id": testImplementationID,
		"created_at":        time.Now(),
	}}
}

func implementationRow() []map[string]interface{} {
	return []map[string]interface{}{{
		"id":             testImplementationID,
		"name":           "ldap-connector",
		"application_id": testApplicationID,
	}}
}

func applicationRow(phase dbapi.ApplicationPhaseEnum) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":    testApplicationID,
		"name":  "openldap",
		"phase": string(phase),
	}}
}

func countRow(count int) []map[string]interface{} {
	return []map[string]interface{}{{"count": count}}
}

func Test_publishService_CompleteBuild(t *testing.T) {
	RegisterTestingT(t)

	type args struct {
		versionID string
	}
	tests := []struct {
		name                 string
		args                 args
		wantErr              bool
		wantApplicationMoved bool
		setupFn              func(applicationMoved *bool)
	}{
		{
			name:    "error when version does not exist",
			args:    args{versionID: testVersionID},
			wantErr: true,
			setupFn: func(applicationMoved *bool) {
				mocket.Catcher.Reset()
			},
		},
		{
			name: "activates a pending version and its application",
			args: args{versionID: testVersionID},
			// the callback landing first moves both rows out of the publish process
			wantApplicationMoved: true,
			setupFn: func(applicationMoved *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementations"`).
					WithReply(implementationRow())
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "applications"`).
					WithReply(applicationRow(dbapi.ApplicationPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *applicationMoved = true })
			},
		},
		{
			name: "replayed callback on an active version is accepted without effect",
			args: args{versionID: testVersionID},
			setupFn: func(applicationMoved *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseActive))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *applicationMoved = true })
			},
		},
		{
			name: "failure callback already landed, success replay is a no-op",
			args: args{versionID: testVersionID},
			setupFn: func(applicationMoved *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseWithError))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *applicationMoved = true })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applicationMoved := false
			tt.setupFn(&applicationMoved)
			k := &publishService{
				connectionFactory: db.NewMockConnectionFactory(nil),
				dispatchService:   &fakeDispatchService{},
			}
			err := k.CompleteBuild(context.Background(), tt.args.versionID,
				"com.evolveum.polygon.connector-ldap", "3.4.1", "https://nexus.example.com/ldap-3.4.1.jar", 1692000000000)
			Expect(err != nil).To(Equal(tt.wantErr))
			Expect(applicationMoved).To(Equal(tt.wantApplicationMoved))
		})
	}
}

func Test_publishService_FailBuild(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name              string
		wantErr           bool
		wantVersionFailed bool
		wantCascade       bool
		setupFn           func(versionFailed *bool, cascade *bool)
	}{
		{
			name:              "sole version of sole implementation fails the application",
			wantVersionFailed: true,
			wantCascade:       true,
			setupFn: func(versionFailed *bool, cascade *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "implementation_versions"`).
					WithReply(countRow(1))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "implementations"`).
					WithReply(countRow(1))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementations"`).
					WithReply(implementationRow())
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "applications"`).
					WithReply(applicationRow(dbapi.ApplicationPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "implementation_versions"`).
					WithCallback(func(string, []driver.NamedValue) { *versionFailed = true })
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *cascade = true })
			},
		},
		{
			name:              "second implementation blocks the cascade",
			wantVersionFailed: true,
			setupFn: func(versionFailed *bool, cascade *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "implementation_versions"`).
					WithReply(countRow(1))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "implementations"`).
					WithReply(countRow(2))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementations"`).
					WithReply(implementationRow())
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "implementation_versions"`).
					WithCallback(func(string, []driver.NamedValue) { *versionFailed = true })
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *cascade = true })
			},
		},
		{
			name:              "sibling version blocks the cascade even when archived",
			wantVersionFailed: true,
			setupFn: func(versionFailed *bool, cascade *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseInPublishProcess))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "implementation_versions"`).
					WithReply(countRow(2))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "implementation_versions"`).
					WithCallback(func(string, []driver.NamedValue) { *versionFailed = true })
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "applications"`).
					WithCallback(func(string, []driver.NamedValue) { *cascade = true })
			},
		},
		{
			name: "replayed failure on a failed version is accepted without effect",
			setupFn: func(versionFailed *bool, cascade *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseWithError))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "implementation_versions"`).
					WithCallback(func(string, []driver.NamedValue) { *versionFailed = true })
			},
		},
		{
			name: "failure after success replay is a no-op, the version stays active",
			setupFn: func(versionFailed *bool, cascade *bool) {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "implementation_versions"`).
					WithReply(versionRow(dbapi.VersionPhaseActive))
				mocket.Catcher.NewMock().
					WithQuery(`UPDATE "implementation_versions"`).
					WithCallback(func(string, []driver.NamedValue) { *versionFailed = true })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionFailed := false
			cascade := false
			tt.setupFn(&versionFailed, &cascade)
			k := &publishService{
				connectionFactory: db.NewMockConnectionFactory(nil),
				dispatchService:   &fakeDispatchService{},
			}
			err := k.FailBuild(context.Background(), testVersionID, "maven build failed: missing parent pom")
			Expect(err != nil).To(Equal(tt.wantErr))
			Expect(versionFailed).To(Equal(tt.wantVersionFailed))
			Expect(cascade).To(Equal(tt.wantCascade))
		})
	}
}

func Test_publishService_Upload(t *testing.T) {
	RegisterTestingT(t)

	buildUpload := func() (*dbapi.Application, *dbapi.Implementation, *dbapi.ImplementationVersion, []PublishFile) {
		application := &dbapi.Application{
			Name:        "openldap",
			DisplayName: "OpenLDAP",
		}
		implementation := &dbapi.Implementation{
			Name:       "ldap-connector",
			Maintainer: "Evolveum",
			Framework:  dbapi.FrameworkConnId,
		}
		version := &dbapi.ImplementationVersion{
			ConnectorVersion: "3.4.1",
			BuildFramework:   dbapi.BuildFrameworkMaven,
		}
		files := []PublishFile{{Path: "pom.xml", Content: "<project/>"}}
		return application, implementation, version, files
	}

	t.Run("persists the triple and dispatches the build", func(t *testing.T) {
		mocket.Catcher.Reset()
		dispatch := &fakeDispatchService{queueURL: "https://jenkins.example.com/queue/item/42/"}
		k := &publishService{
			connectionFactory: db.NewMockConnectionFactory(nil),
			dispatchService:   dispatch,
		}

		application, implementation, version, files := buildUpload()
		result, err := k.Upload(context.Background(), application, implementation, version, files)

		Expect(err).To(BeNil())
		Expect(dispatch.calls).To(Equal(1))
		Expect(result.ApplicationID).ToNot(BeEmpty())
		Expect(result.ImplementationID).ToNot(BeEmpty())
		Expect(result.VersionID).To(Equal(version.ID))
		Expect(result.DispatchID).To(Equal("https://jenkins.example.com/queue/item/42/"))
		Expect(version.Phase).To(Equal(dbapi.VersionPhaseInPublishProcess))
		Expect(application.Phase).To(Equal(dbapi.ApplicationPhaseInPublishProcess))
	})

	t.Run("implementation reuse is scoped to the owning application", func(t *testing.T) {
		mocket.Catcher.Reset()
		var implementationLookup string
		implementationInserted := false
		mocket.Catcher.NewMock().
			WithQuery(`SELECT * FROM "applications"`).
			WithReply(applicationRow(dbapi.ApplicationPhaseActive))
		mocket.Catcher.NewMock().
			WithQuery(`SELECT * FROM "implementations"`).
			WithCallback(func(query string, _ []driver.NamedValue) { implementationLookup = query })
		mocket.Catcher.NewMock().
			WithQuery(`INSERT INTO "implementations"`).
			WithCallback(func(string, []driver.NamedValue) { implementationInserted = true })

		k := &publishService{
			connectionFactory: db.NewMockConnectionFactory(nil),
			dispatchService:   &fakeDispatchService{queueURL: "https://jenkins.example.com/queue/item/42/"},
		}

		application, implementation, version, files := buildUpload()
		result, err := k.Upload(context.Background(), application, implementation, version, files)

		Expect(err).To(BeNil())
		Expect(result.ApplicationID).To(Equal(testApplicationID))
		// a same-named implementation of another application must not be reused
		Expect(implementationLookup).To(ContainSubstring("application_id"))
		Expect(implementationInserted).To(BeTrue())
		Expect(implementation.ApplicationID).To(Equal(testApplicationID))
	})

	t.Run("dispatch failure fails the version and surfaces the error", func(t *testing.T) {
		mocket.Catcher.Reset()
		versionFailed := false
		mocket.Catcher.NewMock().
			WithQuery(`SELECT * FROM "implementation_versions"`).
			WithReply(versionRow(dbapi.VersionPhaseInPublishProcess))
		mocket.Catcher.NewMock().
			WithQuery(`UPDATE "implementation_versions"`).
			WithCallback(func(string, []driver.NamedValue) { versionFailed = true })

		dispatch := &fakeDispatchService{err: errors.RemoteUnavailable("gitlab is not reachable")}
		k := &publishService{
			connectionFactory: db.NewMockConnectionFactory(nil),
			dispatchService:   dispatch,
		}

		application, implementation, version, files := buildUpload()
		result, err := k.Upload(context.Background(), application, implementation, version, files)

		Expect(result).To(BeNil())
		Expect(err).ToNot(BeNil())
		Expect(err.IsRemoteUnavailable()).To(BeTrue())
		Expect(versionFailed).To(BeTrue())
	})
}
