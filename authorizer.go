package petrel

// Principal identifies the authenticated client a connection belongs to, in
// Kafka's "type:name" form, e.g. "User:alice". Authentication happens before
// this package is involved; the network layer hands the principal in with
// every request.
type Principal string

// Authorizer answers whether a principal may perform an operation on a
// resource. Implementations must be safe for concurrent use: the handler
// consults the authorizer from many requests at once.
type Authorizer interface {
	// Authorized reports whether the principal may perform the operation on
	// the resource.
	Authorized(principal Principal, operation AclOperation, resource Resource) bool

	// AuthorizedOperations returns every operation the principal may perform
	// on the resource. It feeds the v8 authorized_operations response fields.
	AuthorizedOperations(principal Principal, resource Resource) []AclOperation
}

// AllowAllAuthorizer permits every operation for every principal. It is the
// right choice for clusters that do not enforce ACLs.
type AllowAllAuthorizer struct{}

func (AllowAllAuthorizer) Authorized(Principal, AclOperation, Resource) bool {
	return true
}

func (AllowAllAuthorizer) AuthorizedOperations(_ Principal, resource Resource) []AclOperation {
	if resource.ResourceType == AclResourceCluster {
		return []AclOperation{
			AclOperationCreate,
			AclOperationAlter,
			AclOperationDescribe,
			AclOperationClusterAction,
			AclOperationDescribeConfigs,
			AclOperationAlterConfigs,
			AclOperationIdempotentWrite,
		}
	}
	return []AclOperation{
		AclOperationRead,
		AclOperationWrite,
		AclOperationCreate,
		AclOperationDelete,
		AclOperationAlter,
		AclOperationDescribe,
		AclOperationDescribeConfigs,
		AclOperationAlterConfigs,
	}
}

// StaticAuthorizer authorizes against a fixed in-memory rule set. Build the
// rules with the fluent Allow calls before serving; Allow is not safe to call
// concurrently with Authorized.
type StaticAuthorizer struct {
	allowed map[Principal]map[Resource][]AclOperation
}

func NewStaticAuthorizer() *StaticAuthorizer {
	return &StaticAuthorizer{allowed: make(map[Principal]map[Resource][]AclOperation)}
}

// Allow grants the principal the given operations on the resource and returns
// the authorizer so grants can be chained. Granting AclOperationAll permits
// every operation on the resource.
func (a *StaticAuthorizer) Allow(principal Principal, resource Resource, ops ...AclOperation) *StaticAuthorizer {
	byResource := a.allowed[principal]
	if byResource == nil {
		byResource = make(map[Resource][]AclOperation)
		a.allowed[principal] = byResource
	}
	byResource[resource] = append(byResource[resource], ops...)
	return a
}

func (a *StaticAuthorizer) Authorized(principal Principal, operation AclOperation, resource Resource) bool {
	for _, op := range a.allowed[principal][resource] {
		if op == operation || op == AclOperationAll {
			return true
		}
	}
	return false
}

func (a *StaticAuthorizer) AuthorizedOperations(principal Principal, resource Resource) []AclOperation {
	ops := a.allowed[principal][resource]
	if len(ops) == 0 {
		return nil
	}
	out := make([]AclOperation, len(ops))
	copy(out, ops)
	return out
}
