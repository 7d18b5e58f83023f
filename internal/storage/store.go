package storage

import (
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	statesFile    = "states.csv"
	inventoryFile = "inventory.gob"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was configured.
type RunInfo struct {
	Reaction   string
	Thermostat string
	Policy     string
	Labels     []string
	Dt         float64
	Duration   float64
	Clamped    int
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Reaction    string             `json:"reaction"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Thermostat  string             `json:"thermostat"`
	Policy      string             `json:"policy"`
	Labels      []string           `json:"labels"`
	Steps       int                `json:"steps"`
	TotalReward float64            `json:"total_reward"`
	Clamped     int                `json:"clamped"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Trajectory is the per-sample content of states.csv.
type Trajectory struct {
	Labels       []string
	Times        []float64
	States       [][]float64
	Temperatures []float64
	Volumes      []float64
	Rewards      []float64
}

// Save writes metadata, the state trajectory and, when inv is non-nil, the
// final inventory into a new run directory and returns its ID. A failed save
// removes the directory.
func (s *Store) Save(info RunInfo, result *sim.Result, inv *kinetics.Inventory) (string, error) {
	runID := fmt.Sprintf("%s_%s", info.Reaction, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, info, result, inv); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			return "", fmt.Errorf("%w (cleanup: %v)", err, rmErr)
		}
		return "", err
	}
	return runID, nil
}

func writeRun(runDir, runID string, info RunInfo, result *sim.Result, inv *kinetics.Inventory) error {
	meta := RunMetadata{
		ID:          runID,
		Reaction:    info.Reaction,
		Timestamp:   time.Now(),
		Dt:          info.Dt,
		Duration:    info.Duration,
		Thermostat:  info.Thermostat,
		Policy:      info.Policy,
		Labels:      append([]string(nil), info.Labels...),
		Steps:       result.StepsTaken,
		TotalReward: result.TotalReward,
		Clamped:     info.Clamped,
		Metrics:     result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := writeStates(filepath.Join(runDir, statesFile), info.Labels, result); err != nil {
		return fmt.Errorf("write states: %w", err)
	}
	if inv != nil {
		if err := writeInventory(filepath.Join(runDir, inventoryFile), inv); err != nil {
			return fmt.Errorf("write inventory: %w", err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeStates emits one row per recorded state. Row i > 0 carries the
// conditions and reward of the step that produced it; row 0 repeats the
// first step's conditions with zero reward.
func writeStates(path string, labels []string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(result.Times) != len(result.States) {
		return fmt.Errorf("%d times for %d states", len(result.Times), len(result.States))
	}

	w := csv.NewWriter(f)

	if len(result.States) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		if i < len(labels) {
			header = append(header, labels[i])
		} else {
			header = append(header, fmt.Sprintf("n%d", i))
		}
	}
	header = append(header, "temperature", "volume", "reward")
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, val := range result.States[i] {
			row = append(row, formatFloat(val))
		}

		var c sim.Conditions
		reward := 0.0
		switch {
		case i > 0 && i-1 < len(result.Conditions):
			c = result.Conditions[i-1]
			reward = result.Rewards[i-1]
		case len(result.Conditions) > 0:
			c = result.Conditions[0]
		}
		row = append(row, formatFloat(c.Temperature), formatFloat(c.Volume), formatFloat(reward))

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeInventory(path string, inv *kinetics.Inventory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(inv)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates returns the amount vectors and their sample times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return traj.States, traj.Times, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) < 1 {
		return traj, nil
	}

	header := records[0]
	species := len(header) - 4
	if header[0] != "time" || species < 0 {
		return nil, fmt.Errorf("%s: unexpected header %v", statesFile, header)
	}
	traj.Labels = append([]string(nil), header[1:1+species]...)

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", statesFile, i+1, err)
			}
			vals[j] = v
		}
		traj.Times = append(traj.Times, vals[0])
		traj.States = append(traj.States, vals[1:1+species])
		traj.Temperatures = append(traj.Temperatures, vals[1+species])
		traj.Volumes = append(traj.Volumes, vals[2+species])
		traj.Rewards = append(traj.Rewards, vals[3+species])
	}

	return traj, nil
}

func (s *Store) LoadInventory(runID string) (*kinetics.Inventory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, inventoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inv kinetics.Inventory
	if err := gob.NewDecoder(f).Decode(&inv); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return &inv, nil
}

// CopyStates streams the raw states.csv of a run to w.
func (s *Store) CopyStates(runID string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func (s *Store) Delete(runID string) error {
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("not a run directory: %s", runID)
	}
	return os.RemoveAll(dir)
}
