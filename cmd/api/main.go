package main

import (
	"net/http"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/teris-io/shortid"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/environment"
	"github.com/reelkit/media-assembly/workflows"
)

type Server struct {
	wfClient client.Client
	store    *JobStore
}

func getTemporalClient() (client.Client, error) {
	return client.Dial(client.Options{
		HostPort:  os.Getenv("TEMPORAL_HOST_PORT"),
		Namespace: os.Getenv("TEMPORAL_NAMESPACE"),
	})
}

func getQueue() string {
	queue := os.Getenv("QUEUE")
	if queue == "" {
		queue = environment.QueueWorker
	}
	return queue
}

func getParamFromCtx(ctx *gin.Context, key string) string {
	return ctx.DefaultPostForm(key, ctx.DefaultQuery(key, ""))
}

func (s *Server) produceHandler(ctx *gin.Context) {
	var config common.ProductionConfig
	if err := ctx.BindJSON(&config); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "produce-" + config.TitleID + "-" + shortid.MustGenerate(),
		TaskQueue: getQueue(),
	}

	res, err := s.wfClient.ExecuteWorkflow(ctx, workflowOptions, workflows.ProduceVideo, workflows.ProduceVideoParams{
		Config: config,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = s.store.RecordJob(res.GetID(), "ProduceVideo", config.TitleID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to record job")
	}

	ctx.JSON(http.StatusOK, gin.H{"workflowId": res.GetID(), "runId": res.GetRunID()})
}

func (s *Server) produceBatchHandler(ctx *gin.Context) {
	var params workflows.ProduceBatchParams
	if err := ctx.BindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(params.Configs) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no configs provided"})
		return
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "batch-" + shortid.MustGenerate(),
		TaskQueue: getQueue(),
	}

	res, err := s.wfClient.ExecuteWorkflow(ctx, workflowOptions, workflows.ProduceBatch, params)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = s.store.RecordJob(res.GetID(), "ProduceBatch", "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to record job")
	}

	ctx.JSON(http.StatusOK, gin.H{"workflowId": res.GetID(), "runId": res.GetRunID()})
}

func (s *Server) jobsHandler(ctx *gin.Context) {
	jobs, err := s.store.ListJobs(100)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, jobs)
}

func (s *Server) jobStatusHandler(ctx *gin.Context) {
	workflowID := ctx.Param("id")

	resp, err := s.wfClient.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	info := resp.GetWorkflowExecutionInfo()
	out := gin.H{
		"workflowId": workflowID,
		"type":       info.GetType().GetName(),
		"status":     info.GetStatus().String(),
		"running":    info.GetStatus() == enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
		"startTime":  info.GetStartTime().AsTime(),
	}
	if info.GetCloseTime() != nil {
		out["closeTime"] = info.GetCloseTime().AsTime()
	}

	ctx.JSON(http.StatusOK, out)
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	wfClient, err := getTemporalClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to temporal")
	}
	defer wfClient.Close()

	store, err := NewJobStore(os.Getenv("JOB_DB_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open job store")
	}
	defer store.Close()

	server := &Server{
		wfClient: wfClient,
		store:    store,
	}

	r := gin.Default()
	r.Use(cors.Default())

	r.POST("/productions", server.produceHandler)
	r.POST("/productions/batch", server.produceBatchHandler)
	r.GET("/productions", server.jobsHandler)
	r.GET("/productions/:id", server.jobStatusHandler)

	r.GET("/schemas", server.getWorkflowSchemas)
	r.POST("/trigger-dynamic", server.triggerDynamicHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Starting api")
	err = r.Run(":" + port)
	if err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func getFunctionName(i interface{}) string {
	if fullName, ok := i.(string); ok {
		return fullName
	}
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	elements := strings.Split(fullName, ".")
	shortName := elements[len(elements)-1]
	return strings.TrimSuffix(shortName, "-fm")
}
