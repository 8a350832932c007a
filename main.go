package main

import (
	"log"
	"net/http"

	"caseflow/auditlog"
	"caseflow/bizerror"
	"caseflow/client/es"
	"caseflow/common"
	"caseflow/domain"
	"caseflow/domain/participant"
	"caseflow/domain/process"
	"caseflow/domain/workitem"
	"caseflow/indices"
	"caseflow/indices/search"
	"caseflow/infra/tracing"
	"caseflow/persistence"
	"caseflow/session"
	"caseflow/sweep"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB().AutoMigrate(
		&domain.Process{}, &domain.ProcessStage{}, &domain.Activity{}, &domain.WorkItem{},
		&auditlog.ProcessLog{}, &participant.Participant{},
	).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	if closer := tracing.SetupTracing(common.GetServiceName()); closer != nil {
		defer closer.Close()
	}
	es.CreateClientFromEnv()

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "caseflow")
	})

	process.RegisterProcessesRestAPI(engine, session.SimpleAuthFilter())
	workitem.RegisterWorkItemsRestAPI(engine, session.SimpleAuthFilter())
	auditlog.RegisterLogsRestAPI(engine, session.SimpleAuthFilter())
	participant.RegisterParticipantsRestAPI(engine, session.SimpleAuthFilter())
	search.RegisterProcessSearchRestAPI(engine, session.SimpleAuthFilter())

	indices.BootstrapProcessIndices()
	sweep.StartCron()

	err = engine.Run(":80")
	if err != nil {
		panic(err)
	}
}
