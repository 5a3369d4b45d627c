package presenters

import (
	"encoding/base64"
	"testing"

	"github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
)

func Test_ConvertUploadRequest(t *testing.T) {
	g := gomega.NewWithT(t)

	request := public.UploadRequest{
		Application: public.ApplicationUpload{
			Name:      "openldap",
			Logo:      base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47}),
			Tags:      []string{"directory", "ldap"},
			Countries: []string{"CZ"},
		},
		Implementation: public.ImplementationUpload{
			Name:       "ldap-connector",
			Maintainer: "Evolveum",
			Framework:  "connid",
		},
		Version: public.VersionUpload{
			ConnectorVersion: "3.4.1",
			ReleasedDate:     "2023-06-30",
			BuildFramework:   "maven",
			Capabilities:     []string{"READ", "CREATE"},
		},
		Files: []public.FileEntry{
			{Path: "pom.xml", Content: "<project/>"},
			{Path: "src/main/java/Connector.java", Content: "class Connector {}"},
		},
	}

	application, implementation, version, files, err := ConvertUploadRequest(request)
	g.Expect(err).To(gomega.BeNil())

	g.Expect(application.Name).To(gomega.Equal("openldap"))
	g.Expect(application.Logo).To(gomega.Equal([]byte{0x89, 0x50, 0x4e, 0x47}))
	g.Expect(application.Tags).To(gomega.HaveLen(2))
	g.Expect(application.Countries).To(gomega.HaveLen(1))
	g.Expect(application.Countries[0].Code).To(gomega.Equal("CZ"))

	g.Expect(implementation.Framework).To(gomega.Equal(dbapi.FrameworkConnId))

	g.Expect(version.ConnectorVersion).To(gomega.Equal("3.4.1"))
	g.Expect(version.ReleasedDate).ToNot(gomega.BeNil())
	g.Expect(version.ReleasedDate.Format("2006-01-02")).To(gomega.Equal("2023-06-30"))
	g.Expect([]string(version.Capabilities)).To(gomega.Equal([]string{"READ", "CREATE"}))

	g.Expect(files).To(gomega.HaveLen(2))
	g.Expect(files[0].Path).To(gomega.Equal("pom.xml"))
}

func Test_ConvertUploadRequest_Invalid(t *testing.T) {
	g := gomega.NewWithT(t)

	t.Run("logo must be base64", func(t *testing.T) {
		request := public.UploadRequest{
			Application: public.ApplicationUpload{Name: "openldap", Logo: "not-base-64!"},
		}
		_, _, _, _, err := ConvertUploadRequest(request)
		g.Expect(err).ToNot(gomega.BeNil())
		g.Expect(err.HttpCode).To(gomega.Equal(400))
	})

	t.Run("released date must be a plain date", func(t *testing.T) {
		request := public.UploadRequest{
			Version: public.VersionUpload{ReleasedDate: "30.06.2023"},
		}
		_, _, _, _, err := ConvertUploadRequest(request)
		g.Expect(err).ToNot(gomega.BeNil())
		g.Expect(err.HttpCode).To(gomega.Equal(400))
	})
}
