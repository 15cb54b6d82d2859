package provisioning

// State holds the shared results of provisioning phases. It is progressively
// populated as each phase completes and is passed to subsequent phases that
// need earlier results.
type State struct {
	// Resolved by the pipeline before the first phase.
	AccountID string

	// Network results.
	VPCID                string
	InternetGatewayID    string
	PublicSubnetIDs      []string
	PrivateSubnetIDs     []string
	NATGatewayIDs        []string
	PrivateRouteTableIDs []string

	// Key management results, keyed by purpose (storage, secrets, logs).
	KeyIDs  map[string]string
	KeyARNs map[string]string

	// Storage results: logical name (raw, processed, index) -> bucket name.
	Buckets map[string]string

	// Registry results: service -> repository URI.
	RegistryURLs map[string]string

	// Cluster results.
	ClusterEndpoint        string
	ClusterCA              string
	ClusterSecurityGroupID string
	OIDCIssuer             string
	OIDCProviderARN        string

	// Identity results: workload -> role ARN.
	RoleARNs map[string]string

	// Logging results: workload -> log group name.
	LogGroups map[string]string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		KeyIDs:       make(map[string]string),
		KeyARNs:      make(map[string]string),
		Buckets:      make(map[string]string),
		RegistryURLs: make(map[string]string),
		RoleARNs:     make(map[string]string),
		LogGroups:    make(map[string]string),
	}
}

// Outputs is the curated subset of state republished as the system's public
// contract to whatever deploys workloads into the provisioned
// infrastructure. Serialized to outputs.yaml after a successful apply.
type Outputs struct {
	Project         string            `yaml:"project"`
	Region          string            `yaml:"region"`
	ClusterEndpoint string            `yaml:"cluster_endpoint"`
	ClusterCA       string            `yaml:"cluster_ca"`
	OIDCIssuer      string            `yaml:"oidc_issuer"`
	Buckets         map[string]string `yaml:"buckets"`
	RegistryURLs    map[string]string `yaml:"registry_urls"`
	RoleARNs        map[string]string `yaml:"role_arns"`
	LogGroups       map[string]string `yaml:"log_groups"`
	KeyARNs         map[string]string `yaml:"key_arns"`
}

// Outputs assembles the published contract for a project from the state.
func (s *State) Outputs(project, region string) Outputs {
	return Outputs{
		Project:         project,
		Region:          region,
		ClusterEndpoint: s.ClusterEndpoint,
		ClusterCA:       s.ClusterCA,
		OIDCIssuer:      s.OIDCIssuer,
		Buckets:         s.Buckets,
		RegistryURLs:    s.RegistryURLs,
		RoleARNs:        s.RoleARNs,
		LogGroups:       s.LogGroups,
		KeyARNs:         s.KeyARNs,
	}
}
