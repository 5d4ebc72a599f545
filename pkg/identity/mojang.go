package identity

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

// DefaultSessionServer is the Mojang session service.
const DefaultSessionServer = "https://sessionserver.mojang.com"

type mojangProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature"`
}

type mojangProfile struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Properties []mojangProperty `json:"properties"`
}

func (p mojangProfile) identity() (Identity, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("parse profile id %q: %w", p.ID, err)
	}
	ident := Identity{UUID: id, Name: p.Name}
	for _, prop := range p.Properties {
		pp := packet.PlayerProperty{Name: prop.Name, Value: prop.Value}
		if prop.Signature != "" {
			sig := prop.Signature
			pp.Signature = &sig
		}
		ident.Properties = append(ident.Properties, pp)
	}
	return ident, nil
}

// MojangResolver fetches signed profiles from a session server.
type MojangResolver struct {
	BaseURL string
	Client  *http.Client
}

func NewMojangResolver() *MojangResolver {
	return &MojangResolver{BaseURL: DefaultSessionServer, Client: http.DefaultClient}
}

func (m *MojangResolver) Resolve(ctx context.Context, id uuid.UUID) (Identity, error) {
	u := fmt.Sprintf("%s/session/minecraft/profile/%s?unsigned=false",
		m.BaseURL, strings.ReplaceAll(id.String(), "-", ""))
	profile, err := m.get(ctx, u)
	if err != nil {
		return Identity{}, err
	}
	return profile.identity()
}

// HasJoined checks that username authenticated against serverHash, as an
// online-mode server does after the encryption handshake.
func (m *MojangResolver) HasJoined(ctx context.Context, username, serverHash string) (Identity, error) {
	u := fmt.Sprintf("%s/session/minecraft/hasJoined?username=%s&serverId=%s",
		m.BaseURL, url.QueryEscape(username), url.QueryEscape(serverHash))
	profile, err := m.get(ctx, u)
	if err != nil {
		return Identity{}, err
	}
	return profile.identity()
}

func (m *MojangResolver) get(ctx context.Context, u string) (mojangProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return mojangProfile{}, fmt.Errorf("create session request: %w", err)
	}

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return mojangProfile{}, fmt.Errorf("session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		return mojangProfile{}, fmt.Errorf("session server status %d: %w", resp.StatusCode, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return mojangProfile{}, fmt.Errorf("session server unexpected status: %d", resp.StatusCode)
	}

	var profile mojangProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return mojangProfile{}, fmt.Errorf("decode session response: %w", err)
	}
	return profile, nil
}

// ServerHash computes the session hash of the encryption handshake: the
// SHA1 digest as a signed two's complement hex string, without zero
// padding and with a leading "-" for negative values.
func ServerHash(serverID string, sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	hash := h.Sum(nil)

	n := new(big.Int).SetBytes(hash)
	if hash[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 160))
	}
	return n.Text(16)
}
