package llm

import "context"

// StubClient answers every prompt with a fixed string and never touches the
// network. Wired when LLM_PROVIDER=stub so the server runs locally without a
// credential.
type StubClient struct {
	Answer string
}

func (c *StubClient) Complete(ctx context.Context, model, system, user string) (string, error) {
	if c.Answer == "" {
		return "stub answer (LLM_PROVIDER=stub)", nil
	}
	return c.Answer, nil
}
