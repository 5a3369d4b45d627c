package phase

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
)

func Test_PerformVersionOperation(t *testing.T) {

	tests := []struct {
		scenario     string
		VersionPhase dbapi.VersionPhaseEnum
		operation    VersionOperation
		expectError  bool
		updated      bool
		result       dbapi.VersionPhaseEnum
	}{
		{
			scenario:     "activate version in publish process",
			VersionPhase: dbapi.VersionPhaseInPublishProcess,
			operation:    ActivateVersion,
			expectError:  false,
			updated:      true,
			result:       dbapi.VersionPhaseActive,
		},
		{
			scenario:     "fail version in publish process",
			VersionPhase: dbapi.VersionPhaseInPublishProcess,
			operation:    FailVersion,
			expectError:  false,
			updated:      true,
			result:       dbapi.VersionPhaseWithError,
		},
		{
			scenario:     "activate already active version",
			VersionPhase: dbapi.VersionPhaseActive,
			operation:    ActivateVersion,
			expectError:  false,
			updated:      false,
			result:       dbapi.VersionPhaseActive,
		},
		{
			scenario:     "fail already failed version",
			VersionPhase: dbapi.VersionPhaseWithError,
			operation:    FailVersion,
			expectError:  false,
			updated:      false,
			result:       dbapi.VersionPhaseWithError,
		},
		{
			scenario:     "fail active version",
			VersionPhase: dbapi.VersionPhaseActive,
			operation:    FailVersion,
			expectError:  true,
			updated:      false,
			result:       dbapi.VersionPhaseActive,
		},
		{
			scenario:     "activate failed version",
			VersionPhase: dbapi.VersionPhaseWithError,
			operation:    ActivateVersion,
			expectError:  true,
			updated:      false,
			result:       dbapi.VersionPhaseWithError,
		},
		{
			scenario:     "deprecate active version",
			VersionPhase: dbapi.VersionPhaseActive,
			operation:    DeprecateVersion,
			expectError:  false,
			updated:      true,
			result:       dbapi.VersionPhaseDeprecated,
		},
		{
			scenario:     "archive deprecated version",
			VersionPhase: dbapi.VersionPhaseDeprecated,
			operation:    ArchiveVersion,
			expectError:  false,
			updated:      true,
			result:       dbapi.VersionPhaseArchived,
		},
		{
			scenario:     "deprecate version in publish process",
			VersionPhase: dbapi.VersionPhaseInPublishProcess,
			operation:    DeprecateVersion,
			expectError:  true,
			updated:      false,
			result:       dbapi.VersionPhaseInPublishProcess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			RegisterTestingT(t)

			version := &dbapi.ImplementationVersion{
				Phase: tt.VersionPhase,
			}
			updated, err := PerformVersionOperation(version, tt.operation)

			Expect(updated).Should(Equal(tt.updated), "PerformVersionOperation updated=%v, expect updated=%v", updated, tt.updated)
			Expect(err != nil).Should(Equal(tt.expectError), "PerformVersionOperation error=%v, expectError=%v", err, tt.expectError)
			Expect(version.Phase).Should(Equal(tt.result), "PerformVersionOperation phase=%v, expect phase=%v", version.Phase, tt.result)
		})
	}
}
