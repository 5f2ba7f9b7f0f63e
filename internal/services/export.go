package services

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// shareCodeLength truncates the encoded squad to a short code. The code is
// lossy and cannot be decoded back into a squad; it only serves as a stable
// pseudo-identifier for the share link.
const shareCodeLength = 20

// ExportService turns saved squads into external representations: a share
// link and a CSV download. Neither path feeds back into persistence.
type ExportService struct {
	baseURL string
}

func NewExportService(baseURL string) *ExportService {
	return &ExportService{baseURL: strings.TrimRight(baseURL, "/")}
}

// ShareLink encodes the squad as base64 JSON truncated to a short code and
// returns a link carrying it.
func (s *ExportService) ShareLink(squad models.SavedSquad) (string, error) {
	payload, err := json.Marshal(squad)
	if err != nil {
		return "", fmt.Errorf("failed to encode squad: %w", err)
	}

	code := base64.StdEncoding.EncodeToString(payload)
	if len(code) > shareCodeLength {
		code = code[:shareCodeLength]
	}

	return fmt.Sprintf("%s/s/%s", s.baseURL, code), nil
}

// SquadCSV renders the squad as a CSV file, one row per entry.
func (s *ExportService) SquadCSV(squad models.SavedSquad) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"slot", "name", "team", "pos", "rating", "cost"}
	if err := w.Write(header); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range squad.Entries {
		row := []string{
			string(e.Slot),
			e.Player.Name,
			e.Player.Team,
			e.Player.Pos,
			strconv.Itoa(e.Player.Rating),
			strconv.FormatFloat(e.Player.CostFor(squad.HomeTeam), 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("squad_%d.csv", squad.ID)
	return buf.Bytes(), filename, nil
}
