package handlers

import (
	"reactivemesh/api"
	"reactivemesh/domain"
)

// toInstancesResponse converts registrations to API response. Instances is never nil.
func toInstancesResponse(regs []domain.Registration) api.InstancesResponse {
	out := make([]api.InstanceInfo, 0, len(regs))
	for _, r := range regs {
		inst := r.Instance()
		out = append(out, api.InstanceInfo{
			ServiceName: inst.ServiceName,
			InstanceId:  inst.InstanceID,
			Host:        inst.Host,
			Port:        inst.Port,
			Metadata:    inst.Metadata,
		})
	}
	return api.InstancesResponse{Instances: out}
}
