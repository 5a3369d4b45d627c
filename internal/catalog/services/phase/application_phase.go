package phase

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

type ApplicationOperation string

const (
	SubmitApplication   ApplicationOperation = "submit"
	ActivateApplication ApplicationOperation = "activate"
	FailApplication     ApplicationOperation = "fail"
)

// ApplicationFSM handles application phase changes. A failed application is
// not permanently dead: submitting a new version re-enters the publish
// process. An active application stays active across further submissions.
type ApplicationFSM struct {
	Application *dbapi.Application
	fsm         *fsm.FSM
}

var applicationEvents = []fsm.EventDesc{
	{Name: string(SubmitApplication), Src: []string{string(dbapi.ApplicationPhaseRequested), string(dbapi.ApplicationPhaseWithError)}, Dst: string(dbapi.ApplicationPhaseInPublishProcess)},
	{Name: string(SubmitApplication), Src: []string{string(dbapi.ApplicationPhaseInPublishProcess)}, Dst: string(dbapi.ApplicationPhaseInPublishProcess)},
	{Name: string(SubmitApplication), Src: []string{string(dbapi.ApplicationPhaseActive)}, Dst: string(dbapi.ApplicationPhaseActive)},
	{Name: string(ActivateApplication), Src: []string{string(dbapi.ApplicationPhaseInPublishProcess)}, Dst: string(dbapi.ApplicationPhaseActive)},
	{Name: string(ActivateApplication), Src: []string{string(dbapi.ApplicationPhaseActive)}, Dst: string(dbapi.ApplicationPhaseActive)},
	{Name: string(FailApplication), Src: []string{string(dbapi.ApplicationPhaseInPublishProcess)}, Dst: string(dbapi.ApplicationPhaseWithError)},
	{Name: string(FailApplication), Src: []string{string(dbapi.ApplicationPhaseWithError)}, Dst: string(dbapi.ApplicationPhaseWithError)},
}

func NewApplicationFSM(application *dbapi.Application) *ApplicationFSM {
	return &ApplicationFSM{
		Application: application,
		fsm:         fsm.NewFSM(string(application.Phase), applicationEvents, nil),
	}
}

// Perform tries to perform the given operation and updates the application phase,
// first return value is true if the phase was changed and
// second value is an error if the operation is not permitted in the application's present phase
func (a *ApplicationFSM) Perform(operation ApplicationOperation) (bool, *errors.ServiceError) {
	if err := a.fsm.Event(context.TODO(), string(operation)); err != nil {
		switch err.(type) {
		case fsm.NoTransitionError:
			return false, nil
		default:
			return false, errors.BadRequest("Cannot perform operation [%s] on application in phase [%s] because %s",
				operation, a.Application.Phase, err)
		}
	}

	a.Application.Phase = dbapi.ApplicationPhaseEnum(a.fsm.Current())
	return true, nil
}

// PerformApplicationOperation is a utility method to change an application's
// phase and run updatePhase actions after a successful change
func PerformApplicationOperation(application *dbapi.Application, operation ApplicationOperation,
	updatePhase ...func(application *dbapi.Application) *errors.ServiceError) (updated bool, err *errors.ServiceError) {

	if updated, err = NewApplicationFSM(application).Perform(operation); len(updatePhase) > 0 && err == nil && updated {
		for _, f := range updatePhase {
			err = f(application)
			if err != nil {
				break
			}
		}
	}
	return updated, err
}
