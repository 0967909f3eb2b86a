package document

// DraftCandidates collects the draft ids worth looking up for a raw result:
// one per published document, in result order, without repeats.
// Drafts in raw are never candidates.
func DraftCandidates(raw []Document) []ID {
	seen := make(map[ID]struct{}, len(raw))
	ids := make([]ID, 0, len(raw))
	for i := range raw {
		draft, ok := raw[i].id.Draft()
		if !ok {
			continue
		}
		if _, dup := seen[draft]; dup {
			continue
		}
		seen[draft] = struct{}{}
		ids = append(ids, draft)
	}
	return ids
}

// ResolveDrafts replaces every published document in raw with its draft when
// the draft is present in drafts, then drops repeated ids keeping the first.
// Draft entries of raw pass through untouched.
func ResolveDrafts(raw, drafts []Document) []Document {
	byID := make(map[ID]Document, len(drafts))
	for _, d := range drafts {
		if _, ok := byID[d.id]; !ok {
			byID[d.id] = d
		}
	}

	out := make([]Document, len(raw))
	for i, doc := range raw {
		out[i] = doc
		draftID, ok := doc.id.Draft()
		if !ok {
			continue
		}
		if found, ok := byID[draftID]; ok {
			out[i] = found
		}
	}
	return Dedupe(out)
}

// Dedupe removes documents whose id was already seen, preserving order.
func Dedupe(docs []Document) []Document {
	seen := make(map[ID]struct{}, len(docs))
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if _, dup := seen[d.id]; dup {
			continue
		}
		seen[d.id] = struct{}{}
		out = append(out, d)
	}
	return out
}
