package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ceadash/cea-dashboard/pkg/config"
)

// ElevenLabsClient is a minimal client for the ElevenLabs conversational-AI API
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	voiceID string
	modelID string
	llm     string
	client  *http.Client
}

// NewElevenLabsClient creates an ElevenLabs client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewElevenLabsClient(cfg *config.ElevenLabsConfig) *ElevenLabsClient {
	var apiKey, baseURL, voiceID, modelID, llm string
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		voiceID = cfg.VoiceID
		modelID = cfg.ModelID
		llm = cfg.LLM
	}
	if apiKey == "" {
		apiKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io/v1"
	}
	if voiceID == "" {
		voiceID = "cjVigY5qzO86Huf0OWal"
	}
	if modelID == "" {
		modelID = "eleven_turbo_v2_5"
	}
	if llm == "" {
		llm = "gpt-4o-mini"
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		voiceID: voiceID,
		modelID: modelID,
		llm:     llm,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// PromptConfig is the agent prompt bundle
type PromptConfig struct {
	Prompt      string   `json:"prompt"`
	LLM         string   `json:"llm"`
	Temperature float64  `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
	ToolIDs     []string `json:"tool_ids"`
}

// AgentSection configures the agent's conversational behavior
type AgentSection struct {
	Prompt       PromptConfig `json:"prompt"`
	Language     string       `json:"language"`
	FirstMessage string       `json:"first_message"`
}

// TTSSection configures text-to-speech
type TTSSection struct {
	VoiceID         string  `json:"voice_id"`
	ModelID         string  `json:"model_id"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Speed           float64 `json:"speed"`
}

// ConversationSection bounds the call length
type ConversationSection struct {
	MaxDurationSeconds int `json:"max_duration_seconds"`
}

// TurnSection configures turn taking
type TurnSection struct {
	TurnTimeout int    `json:"turn_timeout"`
	Mode        string `json:"mode"`
}

// ConversationConfig bundles the agent behavior sections
type ConversationConfig struct {
	Agent        AgentSection        `json:"agent"`
	TTS          TTSSection          `json:"tts"`
	Conversation ConversationSection `json:"conversation"`
	Turn         TurnSection         `json:"turn"`
}

// AgentConfig is the full agent configuration sent to the provider
type AgentConfig struct {
	Name               string             `json:"name"`
	ConversationConfig ConversationConfig `json:"conversation_config"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
}

// BuildAgentConfig generates the agent configuration for a call setup. The
// correlation id is round-tripped through provider metadata so webhook events
// can be matched deterministically.
func (c *ElevenLabsClient) BuildAgentConfig(setup CallSetup, correlationID string) AgentConfig {
	language := setup.Language
	if language == "" {
		language = "es"
	}
	duration := setup.DurationMinutes
	if duration <= 0 {
		duration = 30
	}
	return AgentConfig{
		Name: fmt.Sprintf("Agente CEA - %s", setup.ProcessType),
		ConversationConfig: ConversationConfig{
			Agent: AgentSection{
				Prompt: PromptConfig{
					Prompt:      InterviewPrompt(setup),
					LLM:         c.llm,
					Temperature: 0.3,
					MaxTokens:   500,
					ToolIDs:     []string{},
				},
				Language:     language,
				FirstMessage: FirstMessage(setup),
			},
			TTS: TTSSection{
				VoiceID:         c.voiceID,
				ModelID:         c.modelID,
				Stability:       0.5,
				SimilarityBoost: 0.8,
				Speed:           1.0,
			},
			Conversation: ConversationSection{
				MaxDurationSeconds: duration * 60,
			},
			Turn: TurnSection{
				TurnTimeout: 7,
				Mode:        "silence",
			},
		},
		Metadata: map[string]string{"correlation_id": correlationID},
	}
}

type createAgentResponse struct {
	AgentID string `json:"agent_id"`
}

// CreateAgent creates a new agent and returns its id
func (c *ElevenLabsClient) CreateAgent(ctx context.Context, cfg AgentConfig) (string, error) {
	var resp createAgentResponse
	if err := c.do(ctx, http.MethodPost, "/convai/agents/create", cfg, &resp); err != nil {
		return "", err
	}
	if resp.AgentID == "" {
		return "", fmt.Errorf("elevenlabs returned empty agent_id")
	}
	return resp.AgentID, nil
}

// UpdateAgent patches an existing agent's configuration
func (c *ElevenLabsClient) UpdateAgent(ctx context.Context, agentID string, cfg AgentConfig) error {
	return c.do(ctx, http.MethodPatch, "/convai/agents/"+agentID, cfg, nil)
}

// GetAgent fetches an agent's current configuration
func (c *ElevenLabsClient) GetAgent(ctx context.Context, agentID string) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := c.do(ctx, http.MethodGet, "/convai/agents/"+agentID, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type signedURLResponse struct {
	URL string `json:"url"`
}

// GetAgentLink returns the connection URL a contact uses to join the call.
// Prefers the signed URL endpoint; falls back to the public conversation URL
// when the endpoint refuses (signed URLs are plan-gated). A cancelled or
// timed-out context propagates so provisioning deadlines stay enforced.
func (c *ElevenLabsClient) GetAgentLink(ctx context.Context, agentID string) (string, error) {
	var resp signedURLResponse
	err := c.do(ctx, http.MethodGet, "/convai/agents/"+agentID+"/url/signed", nil, &resp)
	if err == nil && resp.URL != "" {
		return resp.URL, nil
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("get signed url: %w", ctx.Err())
	}
	log.Printf("Warning: signed URL unavailable for agent %s, using public conversation URL: %v", agentID, err)
	return fmt.Sprintf("https://elevenlabs.io/convai/conversation?agent_id=%s", agentID), nil
}

func (c *ElevenLabsClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Detail interface{} `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("elevenlabs returned status %d: %v", resp.StatusCode, apiErr.Detail)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
