package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/models"
)

// ErrArtifactNotFound means the workflow run listing contained no
// artifact matching the requested name.
var ErrArtifactNotFound = errors.New("no artifact to publish")

// ArtifactService fetches workflow-run artifacts from the GitHub API
// and extracts them into the on-disk download tree.
type ArtifactService struct {
	cfg    *config.Config
	client *http.Client
}

func NewArtifactService(cfg *config.Config) *ArtifactService {
	return &ArtifactService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.ArtifactTimeout},
	}
}

// RetrieveRequest identifies the artifact to publish for one build.
type RetrieveRequest struct {
	Project     string
	Version     string
	BuildNumber int
	// ArtifactName filters candidates case-insensitively; empty picks
	// the first artifact in the listing.
	ArtifactName string
	ArtifactsURL string
}

type artifactsResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

type artifact struct {
	Name               string `json:"name"`
	ArchiveDownloadURL string `json:"archive_download_url"`
}

// Retrieve runs the retrieval asynchronously and fires exactly one of
// the callbacks when done. The caller gets no handle and no way to
// cancel; a failed retrieval is terminal for the triggering event.
func (s *ArtifactService) Retrieve(req RetrieveRequest, onDone func([]models.Download), onErr func(error)) {
	go func() {
		downloads, err := s.retrieve(req)
		if err != nil {
			onErr(err)
			return
		}
		onDone(downloads)
	}()
}

func (s *ArtifactService) retrieve(req RetrieveRequest) ([]models.Download, error) {
	listing, err := s.fetchListing(req.ArtifactsURL)
	if err != nil {
		return nil, err
	}

	var chosen *artifact
	for i := range listing.Artifacts {
		candidate := &listing.Artifacts[i]
		if req.ArtifactName == "" || strings.EqualFold(candidate.Name, req.ArtifactName) {
			chosen = candidate
			break
		}
	}
	if chosen == nil {
		return nil, ErrArtifactNotFound
	}

	archivePath, err := s.downloadArchive(chosen.ArchiveDownloadURL)
	if err != nil {
		return nil, fmt.Errorf("download artifact %q: %w", chosen.Name, err)
	}
	// The temp archive is private to this task and must go away on
	// every exit path, extraction failure included.
	defer os.Remove(archivePath)

	destDir := filepath.Join(s.cfg.StorageRoot, req.Project, req.Version, strconv.Itoa(req.BuildNumber))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	downloads, err := ExtractArchive(archivePath, destDir)
	if err != nil {
		return nil, fmt.Errorf("extract artifact %q: %w", chosen.Name, err)
	}
	return downloads, nil
}

func (s *ArtifactService) fetchListing(url string) (*artifactsResponse, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("artifact listing request failed: %s", resp.Status)
	}

	var listing artifactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode artifact listing: %w", err)
	}
	return &listing, nil
}

// downloadArchive fetches the artifact zip to a private temp file and
// returns its path. The caller owns removal.
func (s *ArtifactService) downloadArchive(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/octet-stream, */*")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "bibliothek-artifact-*.zip")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (s *ArtifactService) authorize(req *http.Request) {
	if s.cfg.GithubToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.GithubToken)
	}
}
