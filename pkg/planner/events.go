package planner

import (
	"context"
	"time"

	"github.com/tsdbquery/planner/pkg/observer"
)

func (p *Planner) notify(ctx context.Context, evt observer.Event) {
	evt.PlanID = p.id
	evt.Timestamp = time.Now()
	p.observers.Notify(ctx, evt)
}

func (p *Planner) notifyPlanStart(ctx context.Context) {
	p.notify(ctx, observer.Event{Type: observer.EventPlanStart, Status: observer.StatusStarted})
	p.logger.Info("plan started")
}

func (p *Planner) notifyPlanEnd(ctx context.Context, err error) {
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	p.notify(ctx, observer.Event{Type: observer.EventPlanEnd, Status: status, Err: err})
	if p.telemetry != nil {
		p.telemetry.RecordPlan(ctx, p.id, time.Since(p.startedAt), err == nil)
	}
	if err != nil {
		p.logger.WithError(err).Error("plan ended with error")
		return
	}
	p.logger.WithField("elapsed", time.Since(p.startedAt).String()).Info("plan ended")
}

func (p *Planner) notifySetupPass(ctx context.Context, pass int) {
	p.notify(ctx, observer.Event{Type: observer.EventSetupPassStart, Status: observer.StatusStarted})
	if p.telemetry != nil {
		p.telemetry.RecordSetupPass(ctx, p.id)
	}
	p.logger.WithField("pass", pass).Debug("setup pass started")
}

func (p *Planner) notifySetupRestart(ctx context.Context, pass int) {
	p.notify(ctx, observer.Event{Type: observer.EventSetupPassRestart, Status: observer.StatusStarted})
	p.logger.WithField("pass", pass).Debug("setup pass mutated the graph, restarting")
}

func (p *Planner) notifyPushdownFold(ctx context.Context, sourceID, foldedID string) {
	p.notify(ctx, observer.Event{Type: observer.EventPushDownApplied, Status: observer.StatusSuccess, SourceKey: sourceID, NodeID: foldedID})
	if p.telemetry != nil {
		p.telemetry.RecordPushdownFold(ctx, p.id, sourceID)
	}
	p.logger.WithSourceKey(sourceID).WithNodeID(foldedID).Debug("folded node into source")
}

func (p *Planner) notifyNodeInitStart(ctx context.Context, nodeID string) {
	p.notify(ctx, observer.Event{Type: observer.EventNodeInitStart, Status: observer.StatusStarted, NodeID: nodeID})
	p.logger.WithNodeID(nodeID).Debug("node initialize started")
}

func (p *Planner) notifyNodeInitDone(ctx context.Context, nodeID string, start time.Time, err error) {
	status := observer.StatusSuccess
	evtType := observer.EventNodeInitSuccess
	if err != nil {
		status = observer.StatusFailure
		evtType = observer.EventNodeInitFailure
	}
	p.notify(ctx, observer.Event{Type: evtType, Status: status, NodeID: nodeID, Elapsed: time.Since(start), Err: err})
	if p.telemetry != nil {
		p.telemetry.RecordNodeInit(ctx, nodeID, time.Since(start))
	}
	if err != nil {
		p.logger.WithNodeID(nodeID).WithError(err).Warn("node initialize failed")
		return
	}
	p.logger.WithNodeID(nodeID).Debug("node initialize done")
}
