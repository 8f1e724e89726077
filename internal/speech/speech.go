// Package speech turns symbol labels into spoken audio. Audio is
// fetched from Google Translate's free TTS endpoint and cached on disk,
// and a Speaker serializes playback requests so a new tap always cancels
// whatever was still being fetched.
package speech

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chitraboard/internal/models"
)

const ttsRequestTimeout = 10 * time.Second

// LocaleFor maps a display language to the speech synthesis locale.
// Unknown languages fall back to Indian English.
func LocaleFor(lang models.Language, regionalLanguage string) string {
	switch lang {
	case models.LanguageHindi:
		return "hi-IN"
	case models.LanguageRegional:
		switch regionalLanguage {
		case "tamil":
			return "ta-IN"
		case "telugu":
			return "te-IN"
		case "kannada":
			return "kn-IN"
		case "malayalam":
			return "ml-IN"
		default:
			return "en-IN"
		}
	default:
		return "en-IN"
	}
}

// TTSService generates and caches spoken audio files
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a new TTS service caching files under audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// ttsFilename hashes the text so Hindi and Tamil labels make safe
// filenames.
func ttsFilename(text, locale string) string {
	sum := sha1.Sum([]byte(locale + "|" + text))
	return fmt.Sprintf("tts_%s_%s.mp3", locale, hex.EncodeToString(sum[:8]))
}

// GenerateAudioFile converts text to speech in the given locale and
// saves it as MP3. Returns the filename (not full path) on success.
// Already-cached files are returned without a network call.
func (s *TTSService) GenerateAudioFile(ctx context.Context, text, locale string) (string, error) {
	filename := ttsFilename(text, locale)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetchGoogleTTS(ctx, text, locale, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// fetchGoogleTTS uses Google Translate's text-to-speech API. Free, no
// API key needed.
func (s *TTSService) fetchGoogleTTS(ctx context.Context, text, locale, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", locale)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// User agent is required by Google
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// DeleteAudioFile removes a cached audio file. Missing files are not an
// error.
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// CachedAudioFiles returns all MP3 files in the audio directory
func (s *TTSService) CachedAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}
	return audioFiles, nil
}

// Speaker hands out audio for symbol taps with last-tap-wins semantics:
// starting a new utterance cancels the fetch of the previous one, the
// way a child tapping quickly across a board expects.
type Speaker struct {
	tts *TTSService

	mu     sync.Mutex
	gen    int
	cancel context.CancelFunc
}

// NewSpeaker creates a Speaker backed by the given TTS service
func NewSpeaker(tts *TTSService) *Speaker {
	return &Speaker{tts: tts}
}

// Speak cancels any in-flight utterance and generates audio for text.
// Returns the cached audio filename.
func (sp *Speaker) Speak(ctx context.Context, text string, lang models.Language, regionalLanguage string) (string, error) {
	sp.mu.Lock()
	if sp.cancel != nil {
		sp.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	sp.cancel = cancel
	sp.gen++
	gen := sp.gen
	sp.mu.Unlock()

	defer func() {
		cancel()
		sp.mu.Lock()
		// Only clear if a newer utterance has not replaced us
		if sp.gen == gen {
			sp.cancel = nil
		}
		sp.mu.Unlock()
	}()

	locale := LocaleFor(lang, regionalLanguage)
	return sp.tts.GenerateAudioFile(ctx, text, locale)
}

// Stop cancels the in-flight utterance, if any.
func (sp *Speaker) Stop() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.cancel != nil {
		sp.cancel()
		sp.cancel = nil
	}
}
