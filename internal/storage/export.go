package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times        []float64          `json:"times"`
	States       [][]float64        `json:"states"`
	Temperatures []float64          `json:"temperatures"`
	Volumes      []float64          `json:"volumes"`
	Rewards      []float64          `json:"rewards"`
	Inventory    map[string]float64 `json:"inventory,omitempty"`
}

// ExportJSON writes a stored run, metadata and trajectory together, to w.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata:  *meta,
		Times:        traj.Times,
		States:       traj.States,
		Temperatures: traj.Temperatures,
		Volumes:      traj.Volumes,
		Rewards:      traj.Rewards,
	}
	if inv, err := s.LoadInventory(runID); err == nil {
		data.Inventory = inv.Amounts
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
