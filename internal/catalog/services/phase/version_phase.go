package phase

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

type VersionOperation string

const (
	ActivateVersion  VersionOperation = "activate"
	FailVersion      VersionOperation = "fail"
	DeprecateVersion VersionOperation = "deprecate"
	ArchiveVersion   VersionOperation = "archive"
)

// VersionFSM handles implementation version phase changes. A publish attempt
// is monotone: once a version leaves in_publish_process it never returns.
type VersionFSM struct {
	Version *dbapi.ImplementationVersion
	fsm     *fsm.FSM
}

var versionEvents = []fsm.EventDesc{
	{Name: string(ActivateVersion), Src: []string{string(dbapi.VersionPhaseInPublishProcess)}, Dst: string(dbapi.VersionPhaseActive)},
	{Name: string(ActivateVersion), Src: []string{string(dbapi.VersionPhaseActive)}, Dst: string(dbapi.VersionPhaseActive)},
	{Name: string(FailVersion), Src: []string{string(dbapi.VersionPhaseInPublishProcess)}, Dst: string(dbapi.VersionPhaseWithError)},
	{Name: string(FailVersion), Src: []string{string(dbapi.VersionPhaseWithError)}, Dst: string(dbapi.VersionPhaseWithError)},
	{Name: string(DeprecateVersion), Src: []string{string(dbapi.VersionPhaseActive)}, Dst: string(dbapi.VersionPhaseDeprecated)},
	{Name: string(ArchiveVersion), Src: []string{string(dbapi.VersionPhaseActive), string(dbapi.VersionPhaseDeprecated)}, Dst: string(dbapi.VersionPhaseArchived)},
}

func NewVersionFSM(version *dbapi.ImplementationVersion) *VersionFSM {
	return &VersionFSM{
		Version: version,
		fsm:     fsm.NewFSM(string(version.Phase), versionEvents, nil),
	}
}

// Perform tries to perform the given operation and updates the version phase,
// first return value is true if the phase was changed and
// second value is an error if the operation is not permitted in the version's present phase
func (v *VersionFSM) Perform(operation VersionOperation) (bool, *errors.ServiceError) {
	if err := v.fsm.Event(context.TODO(), string(operation)); err != nil {
		switch err.(type) {
		case fsm.NoTransitionError:
			return false, nil
		default:
			return false, errors.BadRequest("Cannot perform operation [%s] on connector version in phase [%s] because %s",
				operation, v.Version.Phase, err)
		}
	}

	v.Version.Phase = dbapi.VersionPhaseEnum(v.fsm.Current())
	return true, nil
}

// PerformVersionOperation is a utility method to change a version's phase
// and run updatePhase actions after a successful change
func PerformVersionOperation(version *dbapi.ImplementationVersion, operation VersionOperation,
	updatePhase ...func(version *dbapi.ImplementationVersion) *errors.ServiceError) (updated bool, err *errors.ServiceError) {

	if updated, err = NewVersionFSM(version).Perform(operation); len(updatePhase) > 0 && err == nil && updated {
		for _, f := range updatePhase {
			err = f(version)
			if err != nil {
				break
			}
		}
	}
	return updated, err
}
