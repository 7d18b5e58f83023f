package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/sim"
)

func testResult() *sim.Result {
	c := sim.Conditions{Temperature: 300, Volume: 0.1}
	return &sim.Result{
		States: []sim.State{
			{1.0, 0.0, 0.0},
			{0.99, 0.01, 0.0},
			{0.98, 0.0195, 0.0005},
		},
		Conditions:  []sim.Conditions{c, c},
		Rewards:     []float64{0, 0.0005},
		Times:       []float64{0.0, 0.01, 0.02},
		Metrics:     map[string]float64{"yield": 0.0005},
		TotalReward: 0.0005,
		StepsTaken:  2,
	}
}

func testInfo() RunInfo {
	return RunInfo{
		Reaction:   "reaction_1",
		Thermostat: "constant",
		Policy:     "reject",
		Labels:     []string{"[A]", "[B]", "[C]"},
		Dt:         0.01,
		Duration:   0.02,
	}
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return st, tmpDir
}

func TestStoreSaveLoad(t *testing.T) {
	st, _ := newStore(t)

	runID, err := st.Save(testInfo(), testResult(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "reaction_1_") || len(runID) != len("reaction_1_")+8 {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Reaction != "reaction_1" {
		t.Errorf("expected reaction 'reaction_1', got '%s'", meta.Reaction)
	}
	if meta.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", meta.Steps)
	}
	if meta.Metrics["yield"] != 0.0005 {
		t.Errorf("expected yield 0.0005, got %f", meta.Metrics["yield"])
	}
	if len(meta.Labels) != 3 {
		t.Errorf("expected 3 labels, got %v", meta.Labels)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 samples, got %d states and %d times", len(states), len(times))
	}
	if states[2][1] != 0.0195 {
		t.Errorf("amount not preserved exactly: %v", states[2][1])
	}
}

func TestStoreTrajectory(t *testing.T) {
	st, _ := newStore(t)

	runID, err := st.Save(testInfo(), testResult(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if traj.Labels[0] != "[A]" {
		t.Errorf("expected labels from header, got %v", traj.Labels)
	}
	if traj.Rewards[0] != 0 || traj.Rewards[2] != 0.0005 {
		t.Errorf("unexpected rewards %v", traj.Rewards)
	}
	if traj.Temperatures[0] != 300 || traj.Volumes[1] != 0.1 {
		t.Errorf("unexpected conditions %v %v", traj.Temperatures, traj.Volumes)
	}
}

func TestStoreInventory(t *testing.T) {
	st, _ := newStore(t)

	r, err := kinetics.New(kinetics.DefaultNetwork())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Add(0, 0.5); err != nil {
		t.Fatal(err)
	}
	inv := r.Inventory()

	runID, err := st.Save(testInfo(), testResult(), &inv)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadInventory(runID)
	if err != nil {
		t.Fatalf("load inventory failed: %v", err)
	}
	if loaded.Amounts["[A]"] != 0.5 || loaded.InHand["[A]"] != 0.5 {
		t.Errorf("inventory not preserved: %+v", loaded)
	}

	fresh, _ := kinetics.New(kinetics.DefaultNetwork())
	if err := fresh.Restore(*loaded); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if fresh.Amounts()[0] != 0.5 {
		t.Errorf("restored amount = %v", fresh.Amounts()[0])
	}
}

func TestStoreList(t *testing.T) {
	st, _ := newStore(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(testInfo(), testResult(), nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st, tmpDir := newStore(t)

	inv := kinetics.Inventory{Network: "reaction_1", Amounts: map[string]float64{"[A]": 1}}
	runID, err := st.Save(testInfo(), testResult(), &inv)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "states.csv", "inventory.gob"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	var buf bytes.Buffer
	if err := st.CopyStates(runID, &buf); err != nil {
		t.Fatalf("copy states failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "time,[A],[B],[C],temperature,volume,reward\n") {
		t.Errorf("unexpected csv header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}

func TestStoreExportJSON(t *testing.T) {
	st, _ := newStore(t)

	inv := kinetics.Inventory{Network: "reaction_1", Amounts: map[string]float64{"[C]": 0.0005}}
	runID, err := st.Save(testInfo(), testResult(), &inv)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || len(data.States) != 3 {
		t.Errorf("unexpected export: id=%s states=%d", data.ID, len(data.States))
	}
	if data.Inventory["[C]"] != 0.0005 {
		t.Errorf("inventory missing from export: %v", data.Inventory)
	}
}

func TestStoreDelete(t *testing.T) {
	st, _ := newStore(t)

	runID, err := st.Save(testInfo(), testResult(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(runID); err == nil {
		t.Error("expected run to be gone")
	}
	if err := st.Delete("missing"); err == nil {
		t.Error("expected error deleting unknown run")
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	st, tmpDir := newStore(t)

	badStates := testResult()
	badStates.Times = badStates.Times[:1]

	badMetrics := testResult()
	badMetrics.Metrics = map[string]float64{"yield": math.NaN()}

	for name, result := range map[string]*sim.Result{"states": badStates, "metadata": badMetrics} {
		t.Run(name, func(t *testing.T) {
			if _, err := st.Save(testInfo(), result, nil); err == nil {
				t.Fatal("expected save to fail")
			}

			entries, err := os.ReadDir(tmpDir)
			if err != nil {
				t.Fatalf("read dir failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("expected no run directories, got %d", len(entries))
			}
			runs, err := st.List()
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(runs) != 0 {
				t.Errorf("expected 0 runs, got %d", len(runs))
			}
		})
	}
}
