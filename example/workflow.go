package main

import (
	"time"

	restate "github.com/restatedev/sdk-go"
)

type ShipmentResult struct {
	Status string `json:"status"`
}

// shipment is a Workflow: run() blocks on a signal delivered later by
// dispatch(), exactly the handoff original_source/examples/src/
// workflow.rs demonstrates via ctx.promise("await_user").awaitable().
var shipment = restate.
	NewWorkflow("Shipment").
	Handler("run", restate.NewWorkflowHandler(
		func(ctx restate.WorkflowContext, _ restate.Void) (ShipmentResult, error) {
			carrier, err := ctx.Promise("dispatched").Get()
			if err != nil {
				return ShipmentResult{}, err
			}
			return ShipmentResult{Status: "dispatched via " + string(carrier)}, nil
		})).
	Handler("dispatch", restate.NewWorkflowSharedHandler(
		func(ctx restate.WorkflowSharedContext, carrier restate.Void) (restate.Void, error) {
			return restate.Void{}, ctx.Promise("dispatched").Resolve([]byte("ground"))
		}))

// slowEcho simulates a callee that may not answer within the caller's
// patience, exercising Context.Timeout
// (original_source/examples/src/timeout.rs's
// "ctx.timeout(echo_service_client().echo(...), 10000)").
var slowEcho = restate.
	NewService("SlowEcho").
	Handler("echo", restate.NewServiceHandler(
		func(ctx restate.Context, req PaymentRequest) (PaymentResponse, error) {
			if err := ctx.Sleep(2 * time.Second); err != nil {
				return PaymentResponse{}, err
			}
			return PaymentResponse{ID: req.UserID}, nil
		}))

var timeoutCaller = restate.
	NewService("TimeoutCaller").
	Handler("callWithTimeout", restate.NewServiceHandler(
		func(ctx restate.Context, req PaymentRequest) (string, error) {
			call := ctx.Service("SlowEcho").Method("echo").Request(req)
			winner, err := ctx.Timeout(call, 10*time.Millisecond)
			if restate.IsTimeoutError(err) {
				return "timeout", nil
			}
			if err != nil {
				return "", err
			}
			var resp PaymentResponse
			if err := winner.(restate.ResponseFuture).Response(&resp); err != nil {
				return "", err
			}
			return resp.ID, nil
		}))
