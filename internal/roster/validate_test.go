package roster

import "testing"

func TestValidateUploadAccepts(t *testing.T) {
	payload := []byte(`[
		{"userId": "alice", "department": "eng", "standupMandatory": 1, "trackifyMandatory": true},
		{"userId": "bob"}
	]`)

	docs, err := ValidateUpload(payload)
	if err != nil {
		t.Fatalf("Expected valid upload, got %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Expected 2 documents, got %d", len(docs))
	}
}

func TestValidateUploadRejectsStringFlag(t *testing.T) {
	payload := []byte(`[{"userId": "alice", "standupMandatory": "1"}]`)

	if _, err := ValidateUpload(payload); err == nil {
		t.Error("String flag must fail schema validation")
	}
}

func TestValidateUploadRejectsMissingUserID(t *testing.T) {
	payload := []byte(`[{"department": "eng"}]`)

	if _, err := ValidateUpload(payload); err == nil {
		t.Error("Document without userId must be rejected")
	}
}

func TestValidateUploadRejectsNonArray(t *testing.T) {
	if _, err := ValidateUpload([]byte(`{"userId": "alice"}`)); err == nil {
		t.Error("Non-array payload must be rejected")
	}
	if _, err := ValidateUpload([]byte(`not json`)); err == nil {
		t.Error("Malformed JSON must be rejected")
	}
}
