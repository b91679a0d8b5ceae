package petrel

// brokersForListener renders the cluster's brokers as response entries using
// the addresses they advertise on the given listener. A broker with no address
// on that listener is left out rather than reported with someone else's
// address.
func (h *MetadataHandler) brokersForListener(listener string) []*Broker {
	endpoints := h.cache.Brokers()
	brokers := make([]*Broker, 0, len(endpoints))
	for _, ep := range endpoints {
		hp, ok := ep.Listeners[listener]
		if !ok {
			continue
		}
		brokers = append(brokers, &Broker{
			ID:   ep.ID,
			Host: hp.Host,
			Port: hp.Port,
			Rack: ep.Rack,
		})
	}
	return brokers
}

// clusterOperations computes the v8 cluster authorized-operations bitfield. A
// principal that may not describe the cluster learns nothing about it.
func (h *MetadataHandler) clusterOperations(principal Principal) int32 {
	if !h.authorizer.Authorized(principal, AclOperationDescribe, ClusterResource) {
		return 0
	}
	return aclOperationsBitfield(h.authorizer.AuthorizedOperations(principal, ClusterResource))
}

// assembleResponse builds the response around the resolved topic entries. The
// response version always mirrors the request's; fields the version cannot
// carry are simply not encoded.
func (h *MetadataHandler) assembleResponse(req *MetadataRequest, conn *ConnContext, topics []*TopicMetadata) *MetadataResponse {
	resp := &MetadataResponse{
		Version:      req.Version,
		Brokers:      h.brokersForListener(conn.ListenerName),
		ClusterID:    h.conf.ClusterID,
		ControllerID: h.cache.ControllerID(),
		Topics:       topics,
	}

	if req.Version >= metadataVersionIncludeAuthOps && req.IncludeClusterAuthorizedOperations {
		resp.ClusterAuthorizedOperations = h.clusterOperations(conn.Principal)
	}

	return resp
}
