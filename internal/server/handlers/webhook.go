package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/models"
	"github.com/hpfxd/bibliothek/internal/services"
)

// workflowRunPayload is the subset of a GitHub workflow_run webhook
// delivery this service cares about.
type workflowRunPayload struct {
	Action   string `json:"action"`
	Workflow struct {
		Name string `json:"name"`
	} `json:"workflow"`
	WorkflowRun struct {
		ArtifactsURL string `json:"artifacts_url"`
		HeadBranch   string `json:"head_branch"`
		HeadCommit   struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		} `json:"head_commit"`
		RunNumber    int       `json:"run_number"`
		RunStartedAt time.Time `json:"run_started_at"`
	} `json:"workflow_run"`
}

// Webhook accepts a workflow-run event and, for completed runs passing
// the workflow/branch filters, publishes a build: the version is
// resolved or created synchronously, then artifact retrieval and build
// insertion continue in the background while the request returns 204
// immediately. Retrieval failures are logged and never retried; the
// upstream event must be resent to try again.
func Webhook(c *fiber.Ctx) error {
	projectName, err := paramProjectName(c)
	if err != nil {
		return err
	}
	versionName, err := paramVersionName(c)
	if err != nil {
		return err
	}

	branchFilter := c.Query("branch")
	workflowFilter := c.Query("workflow")
	artifactFilter := c.Query("artifact")
	downloadKey := c.Query("download")
	if !downloadKeyRe.MatchString(downloadKey) {
		return fiber.NewError(fiber.StatusBadRequest, "download parameter required")
	}

	var payload workflowRunPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return fiber.ErrBadRequest
	}

	if payload.Action != "completed" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if payload.WorkflowRun.RunNumber <= 0 || payload.WorkflowRun.ArtifactsURL == "" {
		return fiber.ErrBadRequest
	}
	if (workflowFilter != "" && !strings.EqualFold(workflowFilter, payload.Workflow.Name)) ||
		(branchFilter != "" && !strings.EqualFold(branchFilter, payload.WorkflowRun.HeadBranch)) {
		log.Printf("webhook: ignoring publish request - workflow: %q, branch: %q",
			payload.Workflow.Name, payload.WorkflowRun.HeadBranch)
		return c.SendStatus(fiber.StatusNoContent)
	}

	project, err := database.FindProjectByName(projectName)
	if err != nil {
		return notFoundOr(err, database.ErrProjectNotFound, "project not found")
	}
	version, err := database.FindOrCreateVersion(project.ID, versionName)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	runNumber := payload.WorkflowRun.RunNumber
	change := models.ChangeFromCommit(payload.WorkflowRun.HeadCommit.ID, payload.WorkflowRun.HeadCommit.Message)
	runStartedAt := payload.WorkflowRun.RunStartedAt

	artifacts.Retrieve(services.RetrieveRequest{
		Project:      project.Name,
		Version:      version.Name,
		BuildNumber:  runNumber,
		ArtifactName: artifactFilter,
		ArtifactsURL: payload.WorkflowRun.ArtifactsURL,
	}, func(downloads []models.Download) {
		insertBuild(project, version, runNumber, runStartedAt, change, downloadKey, downloads)
	}, func(err error) {
		log.Printf("webhook: failed to retrieve artifacts for %s run #%d: %v", project.Name, runNumber, err)
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func insertBuild(
	project *models.Project,
	version *models.Version,
	number int,
	startedAt time.Time,
	change models.Change,
	downloadKey string,
	downloads []models.Download,
) {
	if len(downloads) == 0 {
		log.Printf("webhook: run #%d for %s produced no downloads", number, project.Name)
		return
	}
	build := models.Build{
		ProjectID: project.ID,
		VersionID: version.ID,
		Number:    number,
		Time:      startedAt,
		Changes:   []models.Change{change},
		Downloads: map[string]models.Download{downloadKey: downloads[0]},
	}
	if err := database.InsertBuild(&build); err != nil {
		if errors.Is(err, database.ErrDuplicateBuild) {
			log.Printf("webhook: build #%d for %s %s already exists, ignoring duplicate delivery",
				number, project.Name, version.Name)
			return
		}
		log.Printf("webhook: failed to insert build #%d for %s: %v", number, project.Name, err)
		return
	}
	log.Printf("webhook: inserted build #%d for %s %s", number, project.Name, version.Name)
}
