package speech

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chitraboard/internal/models"
)

func TestLocaleFor(t *testing.T) {
	tests := []struct {
		lang     models.Language
		regional string
		want     string
	}{
		{models.LanguageEnglish, "", "en-IN"},
		{models.LanguageHindi, "", "hi-IN"},
		{models.LanguageRegional, "tamil", "ta-IN"},
		{models.LanguageRegional, "telugu", "te-IN"},
		{models.LanguageRegional, "kannada", "kn-IN"},
		{models.LanguageRegional, "malayalam", "ml-IN"},
		{models.LanguageRegional, "unknown", "en-IN"},
		{models.Language("klingon"), "", "en-IN"},
	}
	for _, tc := range tests {
		if got := LocaleFor(tc.lang, tc.regional); got != tc.want {
			t.Errorf("LocaleFor(%s, %s) = %v, want %v", tc.lang, tc.regional, got, tc.want)
		}
	}
}

func TestGenerateAudioFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	svc := NewTTSService(dir)

	// Pre-seed the cache with the filename the service would produce,
	// so no network call happens.
	filename := ttsFilename("रोटी", "hi-IN")
	if err := os.WriteFile(filepath.Join(dir, filename), []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GenerateAudioFile(context.Background(), "रोटी", "hi-IN")
	if err != nil {
		t.Fatalf("GenerateAudioFile failed: %v", err)
	}
	if got != filename {
		t.Errorf("GenerateAudioFile = %v, want cached %v", got, filename)
	}
}

func TestCachedAudioFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewTTSService(dir)

	for _, name := range []string{"a.mp3", "b.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := svc.CachedAudioFiles()
	if err != nil {
		t.Fatalf("CachedAudioFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 mp3 files, got %d: %v", len(files), files)
	}
}

func TestSpeakerUsesCache(t *testing.T) {
	dir := t.TempDir()
	svc := NewTTSService(dir)
	sp := NewSpeaker(svc)

	filename := ttsFilename("water", "en-IN")
	if err := os.WriteFile(filepath.Join(dir, filename), []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := sp.Speak(context.Background(), "water", models.LanguageEnglish, "")
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}
	if got != filename {
		t.Errorf("Speak = %v, want %v", got, filename)
	}

	// Stop with nothing in flight is a no-op
	sp.Stop()
}

func TestDeleteAudioFileMissing(t *testing.T) {
	svc := NewTTSService(t.TempDir())
	if err := svc.DeleteAudioFile("never-existed.mp3"); err != nil {
		t.Errorf("deleting a missing file should not error: %v", err)
	}
}
