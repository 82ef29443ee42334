package bridge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
)

type slotRequest struct {
	Slot int `json:"slot"`
}

type keyedSlotRequest struct {
	Slot int    `json:"slot"`
	Key  uint32 `json:"key"`
}

type fileRedirection struct{ c *Client }

var _ ports.FileRedirection = fileRedirection{}

func (f fileRedirection) Available(ctx context.Context) bool {
	return f.c.Capabilities(ctx).FileRedirection
}

func (f fileRedirection) ResourcePaths(ctx context.Context, slot int) (map[string][]string, error) {
	var resp struct {
		Paths map[string][]string `json:"paths"`
	}
	if err := f.c.call(ctx, f.Available(ctx), "/redirection/resource-paths", slotRequest{Slot: slot}, &resp); err != nil {
		return nil, err
	}
	return resp.Paths, nil
}

func (f fileRedirection) MetaManipulations(ctx context.Context, slot int) (string, error) {
	var resp struct {
		Manipulations string `json:"manipulations"`
	}
	if err := f.c.call(ctx, f.Available(ctx), "/redirection/meta", slotRequest{Slot: slot}, &resp); err != nil {
		return "", err
	}
	return resp.Manipulations, nil
}

func (f fileRedirection) SetTemporaryOverrides(ctx context.Context, slot int, files map[string]string, manipulations string) error {
	req := struct {
		Slot          int               `json:"slot"`
		Files         map[string]string `json:"files"`
		Manipulations string            `json:"manipulations"`
	}{Slot: slot, Files: files, Manipulations: manipulations}
	return f.c.call(ctx, f.Available(ctx), "/redirection/overrides/set", req, nil)
}

func (f fileRedirection) RemoveTemporaryOverrides(ctx context.Context, slot int) error {
	return f.c.call(ctx, f.Available(ctx), "/redirection/overrides/remove", slotRequest{Slot: slot}, nil)
}

func (f fileRedirection) Redraw(ctx context.Context, slot int) error {
	return f.c.call(ctx, f.Available(ctx), "/redirection/redraw", slotRequest{Slot: slot}, nil)
}

type collections struct{ c *Client }

var _ ports.CollectionResolver = collections{}

func (cl collections) CollectionFiles(ctx context.Context, collection string) (map[string]string, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: collection}
	var resp struct {
		Files map[string]string `json:"files"`
	}
	if err := cl.c.call(ctx, cl.c.Capabilities(ctx).Collections, "/redirection/collection", req, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

type equipment struct{ c *Client }

var _ ports.Equipment = equipment{}

func (e equipment) Available(ctx context.Context) bool {
	return e.c.Capabilities(ctx).Equipment
}

func (e equipment) State(ctx context.Context, slot int) (string, error) {
	var resp struct {
		State string `json:"state"`
	}
	if err := e.c.call(ctx, e.Available(ctx), "/equipment/state", slotRequest{Slot: slot}, &resp); err != nil {
		return "", err
	}
	return resp.State, nil
}

func (e equipment) ApplyState(ctx context.Context, state string, slot int, key uint32) error {
	req := struct {
		Slot  int    `json:"slot"`
		State string `json:"state"`
		Key   uint32 `json:"key"`
	}{Slot: slot, State: state, Key: key}
	return e.c.call(ctx, e.Available(ctx), "/equipment/apply", req, nil)
}

func (e equipment) Unlock(ctx context.Context, slot int, key uint32) error {
	return e.c.call(ctx, e.Available(ctx), "/equipment/unlock", keyedSlotRequest{Slot: slot, Key: key}, nil)
}

func (e equipment) RevertToAutomation(ctx context.Context, slot int, key uint32) error {
	return e.c.call(ctx, e.Available(ctx), "/equipment/revert", keyedSlotRequest{Slot: slot, Key: key}, nil)
}

type boneScaling struct{ c *Client }

var _ ports.BoneScaling = boneScaling{}

func (b boneScaling) Available(ctx context.Context) bool {
	return b.c.Capabilities(ctx).BoneScaling
}

func (b boneScaling) ActiveProfile(ctx context.Context, slot int) (string, error) {
	var resp struct {
		Profile string `json:"profile"`
	}
	if err := b.c.call(ctx, b.Available(ctx), "/scaling/profile", slotRequest{Slot: slot}, &resp); err != nil {
		return "", err
	}
	return resp.Profile, nil
}

func (b boneScaling) ApplyTemporaryProfile(ctx context.Context, slot int, profile string) (string, error) {
	req := struct {
		Slot    int    `json:"slot"`
		Profile string `json:"profile"`
	}{Slot: slot, Profile: profile}
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := b.c.call(ctx, b.Available(ctx), "/scaling/apply", req, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

func (b boneScaling) RevertBySessionID(ctx context.Context, sessionID string) error {
	req := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: sessionID}
	return b.c.call(ctx, b.Available(ctx), "/scaling/revert", req, nil)
}

type peerSync struct{ c *Client }

var _ ports.PeerSync = peerSync{}

type peerFile struct {
	GamePaths []string `json:"gamePaths"`
	Hash      string   `json:"hash"`
}

func (p peerSync) Available(ctx context.Context) bool {
	return p.c.Capabilities(ctx).PeerSync
}

func (p peerSync) CapturedAppearance(ctx context.Context, identity string) (domain.Appearance, bool, error) {
	req := struct {
		Identity string `json:"identity"`
	}{Identity: identity}
	var resp struct {
		Found        bool       `json:"found"`
		Equipment    string     `json:"equipment"`
		Scale        string     `json:"scale"`
		Manipulation string     `json:"manipulation"`
		Files        []peerFile `json:"files"`
	}
	if err := p.c.call(ctx, p.Available(ctx), "/peer/appearance", req, &resp); err != nil {
		return domain.Appearance{}, false, err
	}
	if !resp.Found {
		return domain.Appearance{}, false, nil
	}

	appearance := domain.Appearance{
		Equipment:    resp.Equipment,
		Scale:        resp.Scale,
		Manipulation: resp.Manipulation,
	}
	for _, file := range resp.Files {
		appearance.Files = append(appearance.Files, domain.FileBinding{GamePaths: file.GamePaths, Hash: file.Hash})
	}
	return appearance, true, nil
}

func (p peerSync) CachedFilePath(ctx context.Context, hash string) (string, bool, error) {
	req := struct {
		Hash string `json:"hash"`
	}{Hash: hash}
	var resp struct {
		Found bool   `json:"found"`
		Path  string `json:"path"`
	}
	if err := p.c.call(ctx, p.Available(ctx), "/peer/file", req, &resp); err != nil {
		return "", false, err
	}
	return resp.Path, resp.Found && resp.Path != "", nil
}

type actorTable struct{ c *Client }

var _ ports.ActorTable = actorTable{}

type actorPayload struct {
	Slot    int    `json:"slot"`
	Address uint64 `json:"address"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
}

type actorResponse struct {
	Found bool         `json:"found"`
	Actor actorPayload `json:"actor"`
}

func (a actorTable) BySlot(ctx context.Context, slot int) (domain.Actor, bool, error) {
	var resp actorResponse
	if err := a.c.do(ctx, http.MethodPost, "/actors/slot", slotRequest{Slot: slot}, &resp); err != nil {
		return domain.Actor{}, false, err
	}
	return toActor(resp)
}

func (a actorTable) PrimaryActor(ctx context.Context) (domain.Actor, bool, error) {
	var resp actorResponse
	if err := a.c.do(ctx, http.MethodGet, "/actors/primary", nil, &resp); err != nil {
		return domain.Actor{}, false, err
	}
	return toActor(resp)
}

func toActor(resp actorResponse) (domain.Actor, bool, error) {
	if !resp.Found {
		return domain.Actor{}, false, nil
	}

	kind, err := domain.ParseActorKind(resp.Actor.Kind)
	if err != nil {
		return domain.Actor{}, false, fmt.Errorf("actor in slot %d: %w", resp.Actor.Slot, err)
	}

	return domain.Actor{
		Slot:    resp.Actor.Slot,
		Address: resp.Actor.Address,
		Name:    resp.Actor.Name,
		Kind:    kind,
	}, true, nil
}
