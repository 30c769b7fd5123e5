package main

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/teris-io/shortid"
	"go.temporal.io/sdk/client"

	"github.com/reelkit/media-assembly/workflows"
)

type WorkflowSchema struct {
	Name   string             `json:"name"`
	Schema *jsonschema.Schema `json:"schema"`
}

// getWorkflowSchemas reflects a JSON schema out of every triggerable
// workflow's parameter struct, so callers can discover what
// /trigger-dynamic accepts.
func (s *Server) getWorkflowSchemas(ctx *gin.Context) {
	var schemas []WorkflowSchema

	for _, wf := range workflows.TriggerableWorkflows {
		typ := reflect.TypeOf(wf)
		if typ.NumIn() > 1 {
			schemas = append(schemas, WorkflowSchema{
				Name:   getFunctionName(wf),
				Schema: jsonschema.ReflectFromType(typ.In(1)),
			})
		}
	}

	ctx.JSON(http.StatusOK, schemas)
}

func (s *Server) triggerDynamicHandler(ctx *gin.Context) {
	workflowName := getParamFromCtx(ctx, "workflow")
	if workflowName == "" {
		ctx.Status(http.StatusBadRequest)
		return
	}
	var rawMessage json.RawMessage
	if err := ctx.ShouldBindBodyWith(&rawMessage, binding.JSON); err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}

	wf, found := lo.Find(workflows.TriggerableWorkflows, func(wf any) bool {
		return getFunctionName(wf) == workflowName
	})
	if !found {
		ctx.Status(http.StatusNotFound)
		return
	}

	typ := reflect.TypeOf(wf)
	var arg any
	if typ.NumIn() > 1 {
		argType := typ.In(1)
		if argType.Kind() == reflect.Ptr {
			arg = reflect.New(argType.Elem()).Interface()
		} else {
			arg = reflect.New(argType).Interface()
		}
		if err := json.Unmarshal(rawMessage, arg); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		if argType.Kind() != reflect.Ptr {
			arg = reflect.ValueOf(arg).Elem().Interface()
		}
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        workflowName + "-" + shortid.MustGenerate(),
		TaskQueue: getQueue(),
	}

	var res client.WorkflowRun
	var err error
	if arg != nil {
		res, err = s.wfClient.ExecuteWorkflow(ctx, workflowOptions, wf, arg)
	} else {
		res, err = s.wfClient.ExecuteWorkflow(ctx, workflowOptions, wf)
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = s.store.RecordJob(res.GetID(), workflowName, "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to record job")
	}

	ctx.JSON(http.StatusOK, gin.H{"workflowId": res.GetID(), "runId": res.GetRunID()})
}
