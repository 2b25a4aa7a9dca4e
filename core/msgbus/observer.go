package msgbus

import (
	"perceptron/common"
	"perceptron/core/ml"
)

// Observer forwards training events to a MessageBus under the TrainingMsg topic.
// Events already carry copies of the weights, so they are published as-is.
type Observer struct {
	bus       MessageBus
	sessionID string
}

var _ ml.Observer = (*Observer)(nil)

func NewObserver(bus MessageBus, sessionID string) *Observer {
	return &Observer{bus: bus, sessionID: sessionID}
}

func (o *Observer) TrainingStarted(ev ml.StartEvent) {
	o.bus.Publish(o.sessionID, common.TrainingMsg_Start, &ev)
}

func (o *Observer) Step(ev ml.StepEvent) {
	o.bus.Publish(o.sessionID, common.TrainingMsg_Step, &ev)
}

func (o *Observer) EpochDone(ev ml.EpochEvent) {
	o.bus.Publish(o.sessionID, common.TrainingMsg_Epoch, &ev)
}

func (o *Observer) Converged(ev ml.ConvergedEvent) {
	o.bus.Publish(o.sessionID, common.TrainingMsg_Converged, &ev)
}

func (o *Observer) TrainingFinished(ev ml.FinishEvent) {
	o.bus.Publish(o.sessionID, common.TrainingMsg_Finish, &ev)
}
