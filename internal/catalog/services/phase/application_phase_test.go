package phase

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
)

func Test_PerformApplicationOperation(t *testing.T) {

	tests := []struct {
		scenario         string
		ApplicationPhase dbapi.ApplicationPhaseEnum
		operation        ApplicationOperation
		expectError      bool
		updated          bool
		result           dbapi.ApplicationPhaseEnum
	}{
		{
			scenario:         "submit requested application",
			ApplicationPhase: dbapi.ApplicationPhaseRequested,
			operation:        SubmitApplication,
			expectError:      false,
			updated:          true,
			result:           dbapi.ApplicationPhaseInPublishProcess,
		},
		{
			scenario:         "submit failed application re-enters publish process",
			ApplicationPhase: dbapi.ApplicationPhaseWithError,
			operation:        SubmitApplication,
			expectError:      false,
			updated:          true,
			result:           dbapi.ApplicationPhaseInPublishProcess,
		},
		{
			scenario:         "submit active application stays active",
			ApplicationPhase: dbapi.ApplicationPhaseActive,
			operation:        SubmitApplication,
			expectError:      false,
			updated:          false,
			result:           dbapi.ApplicationPhaseActive,
		},
		{
			scenario:         "submit application already in publish process",
			ApplicationPhase: dbapi.ApplicationPhaseInPublishProcess,
			operation:        SubmitApplication,
			expectError:      false,
			updated:          false,
			result:           dbapi.ApplicationPhaseInPublishProcess,
		},
		{
			scenario:         "activate application in publish process",
			ApplicationPhase: dbapi.ApplicationPhaseInPublishProcess,
			operation:        ActivateApplication,
			expectError:      false,
			updated:          true,
			result:           dbapi.ApplicationPhaseActive,
		},
		{
			scenario:         "fail application in publish process",
			ApplicationPhase: dbapi.ApplicationPhaseInPublishProcess,
			operation:        FailApplication,
			expectError:      false,
			updated:          true,
			result:           dbapi.ApplicationPhaseWithError,
		},
		{
			scenario:         "fail active application is not permitted",
			ApplicationPhase: dbapi.ApplicationPhaseActive,
			operation:        FailApplication,
			expectError:      true,
			updated:          false,
			result:           dbapi.ApplicationPhaseActive,
		},
		{
			scenario:         "activate requested application is not permitted",
			ApplicationPhase: dbapi.ApplicationPhaseRequested,
			operation:        ActivateApplication,
			expectError:      true,
			updated:          false,
			result:           dbapi.ApplicationPhaseRequested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			RegisterTestingT(t)

			application := &dbapi.Application{
				Phase: tt.ApplicationPhase,
			}
			updated, err := PerformApplicationOperation(application, tt.operation)

			Expect(updated).Should(Equal(tt.updated), "PerformApplicationOperation updated=%v, expect updated=%v", updated, tt.updated)
			Expect(err != nil).Should(Equal(tt.expectError), "PerformApplicationOperation error=%v, expectError=%v", err, tt.expectError)
			Expect(application.Phase).Should(Equal(tt.result), "PerformApplicationOperation phase=%v, expect phase=%v", application.Phase, tt.result)
		})
	}
}
