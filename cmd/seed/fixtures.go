package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixtures descreve os dados de demonstração. Referências entre entidades usam o campo key.
type Fixtures struct {
	Users         []UserFixture         `yaml:"users"`
	HelpRequests  []HelpRequestFixture  `yaml:"help_requests"`
	Proposals     []ProposalFixture     `yaml:"proposals"`
	Conversations []ConversationFixture `yaml:"conversations"`
}

type UserFixture struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
	Bio   string `yaml:"bio"`
}

type HelpRequestFixture struct {
	Key             string      `yaml:"key"`
	Owner           string      `yaml:"owner"`
	Kind            string      `yaml:"kind"`
	Title           string      `yaml:"title"`
	Description     string      `yaml:"description"`
	RequestedAmount interface{} `yaml:"requested_amount"`
}

type ProposalFixture struct {
	Author        string      `yaml:"author"`
	HelpRequest   string      `yaml:"help_request"`
	Message       string      `yaml:"message"`
	Amount        interface{} `yaml:"amount"`
	Expertise     string      `yaml:"expertise"`
	HoursPerWeek  int         `yaml:"hours_per_week"`
	DurationWeeks int         `yaml:"duration_weeks"`
	// Status opcional; ACCEPTED ou REFUSED é aplicado pelo dono do pedido.
	Status string `yaml:"status"`
}

type ConversationFixture struct {
	Participants []string         `yaml:"participants"`
	HelpRequest  string           `yaml:"help_request"`
	Messages     []MessageFixture `yaml:"messages"`
}

type MessageFixture struct {
	From string `yaml:"from"`
	Body string `yaml:"body"`
}

func LoadFixtures(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir fixtures: %w", err)
	}
	defer f.Close()
	return DecodeFixtures(f)
}

func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	var fixtures Fixtures
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixtures); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decodificar fixtures: %w", err)
	}
	if err := fixtures.Validate(); err != nil {
		return nil, err
	}
	return &fixtures, nil
}

// Validate confere chaves duplicadas e referências antes de qualquer escrita.
func (f *Fixtures) Validate() error {
	users := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		key := strings.TrimSpace(u.Key)
		if key == "" {
			return fmt.Errorf("users[%d]: key obrigatória", i)
		}
		if users[key] {
			return fmt.Errorf("users[%d]: key duplicada %q", i, key)
		}
		users[key] = true
	}

	requests := make(map[string]bool, len(f.HelpRequests))
	for i, r := range f.HelpRequests {
		key := strings.TrimSpace(r.Key)
		if key == "" {
			return fmt.Errorf("help_requests[%d]: key obrigatória", i)
		}
		if requests[key] {
			return fmt.Errorf("help_requests[%d]: key duplicada %q", i, key)
		}
		if !users[r.Owner] {
			return fmt.Errorf("help_requests[%d]: usuário desconhecido %q", i, r.Owner)
		}
		requests[key] = true
	}

	for i, p := range f.Proposals {
		if !users[p.Author] {
			return fmt.Errorf("proposals[%d]: usuário desconhecido %q", i, p.Author)
		}
		if !requests[p.HelpRequest] {
			return fmt.Errorf("proposals[%d]: pedido desconhecido %q", i, p.HelpRequest)
		}
		switch strings.ToUpper(strings.TrimSpace(p.Status)) {
		case "", "PENDING", "ACCEPTED", "REFUSED":
		default:
			return fmt.Errorf("proposals[%d]: status inválido %q", i, p.Status)
		}
	}

	for i, c := range f.Conversations {
		if len(c.Participants) != 2 {
			return fmt.Errorf("conversations[%d]: exatamente dois participantes", i)
		}
		for _, participant := range c.Participants {
			if !users[participant] {
				return fmt.Errorf("conversations[%d]: usuário desconhecido %q", i, participant)
			}
		}
		if c.HelpRequest != "" && !requests[c.HelpRequest] {
			return fmt.Errorf("conversations[%d]: pedido desconhecido %q", i, c.HelpRequest)
		}
		for j, m := range c.Messages {
			if m.From != c.Participants[0] && m.From != c.Participants[1] {
				return fmt.Errorf("conversations[%d].messages[%d]: remetente %q não participa da conversa", i, j, m.From)
			}
		}
	}
	return nil
}

func (f *Fixtures) messageCount() int {
	total := 0
	for _, c := range f.Conversations {
		total += len(c.Messages)
	}
	return total
}
