package skills

import (
	"reflect"
	"testing"

	"gh-talent-scout/internal/models"
)

func TestDetect_FromBio(t *testing.T) {
	d := NewDetector()

	got := d.Detect("Backend developer. Python, FastAPI and a bit of k8s.", nil, nil)
	want := []string{"FastAPI", "Kubernetes", "Python"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect = %v, want %v", got, want)
	}
}

func TestDetect_FromRepoLanguagesAndText(t *testing.T) {
	d := NewDetector()

	repos := []models.Repo{
		{Name: "ml-pipeline", Description: "training jobs on Kafka", Languages: []string{"Python"}},
		{Name: "dotfiles", Languages: []string{"Shell"}},
	}

	got := d.Detect("", repos, nil)
	want := []string{"Kafka", "Machine Learning", "Python"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect = %v, want %v", got, want)
	}
}

func TestDetect_StarredContributesLanguagesOnly(t *testing.T) {
	d := NewDetector()

	starred := []models.Repo{
		{Name: "awesome-rust", Description: "curated Kubernetes list", Languages: []string{"Rust"}},
	}

	got := d.Detect("", nil, starred)
	want := []string{"Rust"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect = %v, want %v (starred descriptions must not count)", got, want)
	}
}

func TestDetect_SpecialCharacterSkills(t *testing.T) {
	d := NewDetector()

	got := d.Detect("Mostly C++ and C#, sometimes Go", nil, nil)
	want := []string{"C#", "C++", "Go"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect = %v, want %v", got, want)
	}
}

func TestDetect_NoSignals(t *testing.T) {
	d := NewDetector()

	if got := d.Detect("", nil, nil); len(got) != 0 {
		t.Errorf("Detect with no signals = %v, want empty", got)
	}
}

func TestDetect_Deduplicates(t *testing.T) {
	d := NewDetector()

	repos := []models.Repo{
		{Name: "go-service", Languages: []string{"Go"}},
		{Name: "golang-tools", Languages: []string{"Go"}},
	}

	got := d.Detect("golang enthusiast", repos, nil)
	want := []string{"Go"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect = %v, want %v", got, want)
	}
}
