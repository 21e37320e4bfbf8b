// Package schema turns persisted ledger payloads of any past format into the
// canonical domain.Snapshot, and encodes snapshots for storage.
//
// Normalization never fails: unusable payloads yield domain.Default().
// Payloads already in the canonical shape (hashtag stored as an object with a
// "value" key) are decoded as-is; anything else is migrated field by field,
// keeping only fields whose JSON type matches and leaving the rest at their
// defaults.
package schema

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/jsonc"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// Normalize decodes payload into a canonical Snapshot. ok is false when the
// payload is empty or is not a JSON object, in which case the default
// snapshot is returned. Comments and trailing commas from hand-edited files
// are tolerated.
func Normalize(payload []byte) (domain.Snapshot, bool) {
	data := bytes.TrimSpace(jsonc.ToJSON(payload))
	if len(data) == 0 || data[0] != '{' {
		return domain.Default(), false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.Default(), false
	}

	if isCanonical(fields) {
		s := domain.Default()
		err := json.Unmarshal(data, &s)
		if err == nil {
			s.Fill()
			return s, true
		}
		log.Warn().Err(err).Msg("canonical snapshot failed to decode, migrating field by field")
	}

	s := migrate(fields)
	log.Info().Int("participants", len(s.Participants)).Msg("legacy snapshot migrated")
	return s, true
}

// Encode returns the canonical, indented JSON form of s.
func Encode(s domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isCanonical reports whether the hashtag field is an object carrying a
// "value" key, the marker of the current format.
func isCanonical(fields map[string]json.RawMessage) bool {
	raw, ok := fields["hashtag"]
	if !ok || kind(raw) != '{' {
		return false
	}
	var hashtag map[string]json.RawMessage
	if err := json.Unmarshal(raw, &hashtag); err != nil {
		return false
	}
	_, ok = hashtag["value"]
	return ok
}

func migrate(fields map[string]json.RawMessage) domain.Snapshot {
	s := domain.Default()

	if raw, ok := fields["participants"]; ok && kind(raw) == '{' {
		decodeEntries(raw, s.Participants, "participants")
	}
	if raw, ok := fields["bonus_roles"]; ok && kind(raw) == '{' {
		decodeEntries(raw, s.BonusRoles, "bonus_roles")
	}
	if raw, ok := fields["blacklist"]; ok && kind(raw) == '{' {
		decodeEntries(raw, s.Blacklist, "blacklist")
	}
	if raw, ok := fields["moderators"]; ok && kind(raw) == '[' {
		s.Moderators = decodeIDs(raw)
	}

	if raw, ok := fields["hashtag"]; ok {
		s.Hashtag = migrateHashtag(raw)
	}
	if raw, ok := fields["tag"]; ok && kind(raw) == '{' {
		tag := domain.DefaultTag()
		if err := json.Unmarshal(raw, &tag); err == nil {
			s.Tag = tag
		}
	}
	if raw, ok := fields["chat_lock"]; ok && kind(raw) == '{' {
		var lock domain.ChatLock
		if err := json.Unmarshal(raw, &lock); err == nil {
			s.ChatLock = lock
		}
	}
	if raw, ok := fields["inscricao_channel"]; ok {
		s.InscricaoChannel = decodeID(raw)
	}
	if raw, ok := fields["button_message_id"]; ok {
		var buttons domain.ButtonMessages
		if err := json.Unmarshal(raw, &buttons); err == nil {
			s.ButtonMessageID = buttons
		}
	}
	if raw, ok := fields["inscricoes_closed"]; ok {
		var closed bool
		if err := json.Unmarshal(raw, &closed); err == nil {
			s.InscricoesClosed = closed
		}
	}

	s.Fill()
	return s
}

// migrateHashtag upgrades a bare string to {value, locked: false}. An empty
// string means "no hashtag".
func migrateHashtag(raw json.RawMessage) domain.HashtagConfig {
	switch kind(raw) {
	case '"':
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			return domain.HashtagConfig{}
		}
		return domain.HashtagConfig{Value: &v, Locked: false}
	case '{':
		var h domain.HashtagConfig
		if err := json.Unmarshal(raw, &h); err != nil {
			return domain.HashtagConfig{}
		}
		return h
	default:
		return domain.HashtagConfig{}
	}
}

// decodeEntries copies every entry of the raw object that decodes into T.
// Entries that do not are dropped with a warning.
func decodeEntries[T any](raw json.RawMessage, dst map[string]T, field string) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}
	for key, value := range entries {
		var item T
		if err := json.Unmarshal(value, &item); err != nil {
			log.Warn().Err(err).Str("field", field).Str("key", key).Msg("dropping malformed entry")
			continue
		}
		dst[key] = item
	}
}

// decodeIDs reads an array of ids written as numbers or numeric strings,
// skipping anything else and duplicates.
func decodeIDs(raw json.RawMessage) []int64 {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []int64{}
	}
	out := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		id := decodeID(item)
		if id == nil {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

func decodeID(raw json.RawMessage) *int64 {
	switch kind(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return &id
	case 'n', 't', 'f', '{', '[', 0:
		return nil
	default:
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil
		}
		return &id
	}
}

// kind returns the first significant byte of a raw JSON value, or 0.
func kind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
