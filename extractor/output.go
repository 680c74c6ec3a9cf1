package extractor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"squad-extractor/internal/types"
)

var csvHeader = []string{
	"url", "name", "height", "position", "current_club",
	"club_caps", "club_conceded", "club_scored",
	"national_caps", "national_conceded", "national_scored", "national_team",
	"birth", "birth_str",
}

// WriteJSON writes v as indented JSON to filename
func WriteJSON(filename string, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}

	if err := writeToFile(filename, jsonData); err != nil {
		return fmt.Errorf("failed to write results to file: %w", err)
	}
	return nil
}

// WriteCSV writes one row per player, name surname-first
func WriteCSV(w io.Writer, players []types.PlayerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range players {
		birth := ""
		if p.BirthTimestamp != nil {
			birth = strconv.FormatInt(*p.BirthTimestamp, 10)
		}
		row := []string{
			p.URL,
			strings.Join(p.Name, " "),
			strconv.Itoa(p.HeightCm),
			p.Position,
			p.CurrentClub,
			strconv.Itoa(p.ClubCaps),
			strconv.Itoa(p.ClubConceded),
			strconv.Itoa(p.ClubScored),
			strconv.Itoa(p.NationalCaps),
			strconv.Itoa(p.NationalConceded),
			strconv.Itoa(p.NationalScored),
			p.NationalTeam,
			birth,
			p.BirthDateText,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write player data: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes players as CSV to filename
func WriteCSVFile(filename string, players []types.PlayerRecord) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, players)
}

func writeToFile(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0644)
}
