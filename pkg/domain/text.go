package domain

import "github.com/google/uuid"

// Text marshalling lets IDs appear as canonical UUID strings in JSON bodies
// and as map keys.

func (id MonitoringID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *MonitoringID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id InstitutionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *InstitutionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id CaseID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *CaseID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id AliasID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *AliasID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id RecordID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *RecordID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id LetterID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *LetterID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id AttachmentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *AttachmentID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id EmailLogID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *EmailLogID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id LogRecordID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *LogRecordID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ScanRequestID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *ScanRequestID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id AlertID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *AlertID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id OperatorID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *OperatorID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id OutboxID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *OutboxID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
