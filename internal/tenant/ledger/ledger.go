// Package ledger seals audit records into a per-company hash chain. Each
// record's hash covers its content and the previous record's hash, so an
// edited, removed or reordered row is detectable by replaying the chain.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// HashSize is the length of every chain hash.
const HashSize = 32

// domainTag prefixes every hashed payload. Bump the suffix if the sealed
// layout ever changes.
const domainTag = "tally.audit.v1\x00"

// Genesis is the PrevHash of a company's first record.
var Genesis = make([]byte, HashSize)

var ErrBadLink = errors.New("ledger: record does not extend chain")

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("ledger: CBOR encoder initialization failed: " + err.Error())
	}
}

// sealed is the canonical layout that gets hashed. Integer keys keep the
// encoding compact and independent of Go field names.
type sealed struct {
	ID        string `cbor:"1,keyasint"`
	CompanyID string `cbor:"2,keyasint"`
	Principal string `cbor:"3,keyasint"`
	Table     string `cbor:"4,keyasint"`
	Action    string `cbor:"5,keyasint"`
	RecordID  string `cbor:"6,keyasint"`
	Old       []byte `cbor:"7,keyasint"`
	New       []byte `cbor:"8,keyasint"`
	Seq       int64  `cbor:"9,keyasint"`
	PrevHash  []byte `cbor:"10,keyasint"`
	CreatedAt int64  `cbor:"11,keyasint"` // unix micros
}

// Timestamp normalises t to what both stores round-trip exactly.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Digest computes the hash of rec from every field except Hash.
func Digest(rec domain.AuditRecord) ([]byte, error) {
	payload, err := encMode.Marshal(sealed{
		ID:        rec.ID,
		CompanyID: rec.CompanyID,
		Principal: rec.PrincipalID,
		Table:     rec.Table,
		Action:    string(rec.Action),
		RecordID:  rec.RecordID,
		Old:       rec.OldSnapshot,
		New:       rec.NewSnapshot,
		Seq:       rec.Seq,
		PrevHash:  rec.PrevHash,
		CreatedAt: rec.CreatedAt.UTC().UnixMicro(),
	})
	if err != nil {
		return nil, fmt.Errorf("ledger: encode record: %w", err)
	}

	h := blake3.New()
	_, _ = h.Write([]byte(domainTag))
	_, _ = h.Write(payload)
	return h.Sum(nil), nil
}

// Link positions rec after prev (nil for the first record of a company) and
// seals it. It sets Seq, PrevHash, Hash and normalises CreatedAt.
func Link(prev *domain.AuditRecord, rec *domain.AuditRecord) error {
	if prev == nil {
		rec.Seq = 1
		rec.PrevHash = Genesis
	} else {
		if prev.CompanyID != rec.CompanyID {
			return fmt.Errorf("%w: company %s follows %s", ErrBadLink, rec.CompanyID, prev.CompanyID)
		}
		rec.Seq = prev.Seq + 1
		rec.PrevHash = bytes.Clone(prev.Hash)
	}
	rec.CreatedAt = Timestamp(rec.CreatedAt)

	sum, err := Digest(*rec)
	if err != nil {
		return err
	}
	rec.Hash = sum
	return nil
}

// Break describes the first place a chain stops verifying.
type Break struct {
	Seq      int64  `json:"seq"`
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// Report is the result of Verify.
type Report struct {
	CompanyID string `json:"company_id"`
	Records   int    `json:"records"`
	HeadSeq   int64  `json:"head_seq"`
	HeadHash  []byte `json:"head_hash,omitempty"`
	OK        bool   `json:"ok"`
	Break     *Break `json:"break,omitempty"`
}

// Verify replays records, which must be one company's full chain in
// ascending Seq order.
func Verify(companyID string, records []domain.AuditRecord) Report {
	rep := Report{CompanyID: companyID, Records: len(records), OK: true}

	fail := func(r domain.AuditRecord, reason string) Report {
		rep.OK = false
		rep.Break = &Break{Seq: r.Seq, RecordID: r.ID, Reason: reason}
		return rep
	}

	prevHash := Genesis
	for i, r := range records {
		if r.CompanyID != companyID {
			return fail(r, "record belongs to another company")
		}
		if want := int64(i + 1); r.Seq != want {
			return fail(r, fmt.Sprintf("sequence gap: want %d", want))
		}
		if !bytes.Equal(r.PrevHash, prevHash) {
			return fail(r, "previous hash mismatch")
		}
		sum, err := Digest(r)
		if err != nil {
			return fail(r, err.Error())
		}
		if !bytes.Equal(sum, r.Hash) {
			return fail(r, "content hash mismatch")
		}
		prevHash = r.Hash
		rep.HeadSeq = r.Seq
		rep.HeadHash = r.Hash
	}

	return rep
}
