package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		code   int32
		reason string
		want   FailureKind
	}{
		{"message timeout", -1, "Message timed out", Timeout},
		{"connection timeout", -1, "Connection timed out", Timeout},
		{"broker transport failure", 2, "Broker transport failure", BrokerTransportFailure},
		{"unknown reason", 3, "Unknown partition", ProducerError},
		{"empty reason", 0, "", ProducerError},
		{"timeout wins over transport", -1, "transport failure: request timed out", Timeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.code, tt.reason); got != tt.want {
				t.Errorf("Classify(%d, %q) = %v, want %v", tt.code, tt.reason, got, tt.want)
			}
		})
	}
}

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{Timeout, "Timeout"},
		{BrokerTransportFailure, "BrokerTransportFailure"},
		{ProducerError, "ProducerError"},
		{FailureKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FailureKind(%d).String() = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
