package store

import (
	"slices"
	"time"
)

// E2TInstanceState is the lifecycle state of an E2 Termination instance.
type E2TInstanceState string

const (
	E2TInstanceActive                E2TInstanceState = "ACTIVE"
	E2TInstanceToBeDeleted           E2TInstanceState = "TO_BE_DELETED"
	E2TInstanceRoutingManagerFailure E2TInstanceState = "ROUTING_MANAGER_FAILURE"
)

// E2TInstance mirrors the JSON record the E2 Manager keeps per E2T address.
// Field order matches the stored literal so Marshal reproduces it byte for byte.
type E2TInstance struct {
	Address            string           `json:"address"`
	AssociatedRanList  []string         `json:"associatedRanList"`
	KeepAliveTimestamp int64            `json:"keepAliveTimestamp"`
	State              E2TInstanceState `json:"state"`
}

// NewE2TInstance returns an active instance with no associated RANs and a
// keep-alive timestamp in nanoseconds since the epoch.
func NewE2TInstance(address string, keepAlive time.Time) *E2TInstance {
	return &E2TInstance{
		Address:            address,
		AssociatedRanList:  []string{},
		KeepAliveTimestamp: keepAlive.UnixNano(),
		State:              E2TInstanceActive,
	}
}

// IsAssociated reports whether ranName is in the association list.
func (e *E2TInstance) IsAssociated(ranName string) bool {
	return slices.Contains(e.AssociatedRanList, ranName)
}

// KeepAlive returns the keep-alive timestamp as a time.Time.
func (e *E2TInstance) KeepAlive() time.Time {
	return time.Unix(0, e.KeepAliveTimestamp)
}

// IsStale reports whether the last keep-alive is older than threshold at now.
// A timestamp in the future is never stale.
func (e *E2TInstance) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(e.KeepAlive()) > threshold
}

// GeneralConfiguration is the E2 Manager general configuration record.
type GeneralConfiguration struct {
	EnableRic bool `json:"enableRic"`
}

// RsmGeneralConfiguration is the resource status manager configuration record.
type RsmGeneralConfiguration struct {
	EnableResourceStatus         bool `json:"enableResourceStatus"`
	PartialSuccessAllowed        bool `json:"partialSuccessAllowed"`
	PrbPeriodic                  bool `json:"prbPeriodic"`
	TnlLoadIndPeriodic           bool `json:"tnlLoadIndPeriodic"`
	WwLoadIndPeriodic            bool `json:"wwLoadIndPeriodic"`
	AbsStatusPeriodic            bool `json:"absStatusPeriodic"`
	RsrpMeasurementPeriodic      bool `json:"rsrpMeasurementPeriodic"`
	CsiPeriodic                  bool `json:"csiPeriodic"`
	PeriodicityMs                int  `json:"periodicityMs"`
	PeriodicityRsrpMeasurementMs int  `json:"periodicityRsrpMeasurementMs"`
	PeriodicityCsiMs             int  `json:"periodicityCsiMs"`
}

// RsmRanInfo is the resource status manager record for one RAN.
type RsmRanInfo struct {
	RanName           string `json:"ranName"`
	Enb1MeasurementID int64  `json:"enb1MeasurementId"`
	Enb2MeasurementID int64  `json:"enb2MeasurementId"`
	Action            string `json:"action"`
	ActionStatus      bool   `json:"actionStatus"`
}
