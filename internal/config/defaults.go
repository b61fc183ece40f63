package config

// DefaultConfigYAML is the starter configuration written by `scorecard init`.
const DefaultConfigYAML = `# Scorecard AI configuration
# Values not set here use built-in defaults.

log:
  level: info
  format: auto

server:
  addr: ":8080"
  cors_origins: ["*"]

assessment:
  # Ceiling for one assessment; the model's done signal usually ends earlier.
  max_questions: 20
  # Absolute runaway guard for auto-complete runs.
  hard_cap: 30
  default_persona: Enabler

# Ordered fallback chain: the first reachable provider at startup becomes
# current, and failed calls retry down the rest of the list.
providers:
  - name: openai
    model: gpt-4o-mini
    api_key_env: OPENAI_API_KEY
    max_tokens: 4096
    temperature: 0.7
    timeout: 2m

  - name: groq
    base_url: https://api.groq.com/openai/v1
    model: llama-3.3-70b-versatile
    api_key_env: GROQ_API_KEY
    max_tokens: 4096
    temperature: 0.7
    timeout: 2m

  # Local last resort; no API key needed.
  - name: ollama
    base_url: http://localhost:11434/v1
    model: llama3.1
    timeout: 5m

store:
  path: .scorecard/reports.db

session:
  ttl: 2h
`
