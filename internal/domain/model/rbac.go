package model

// RoleSnapshot is a point-in-time view of an RBAC Role.
type RoleSnapshot struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	RuleCount int    `json:"ruleCount"`
}

// RoleBindingSnapshot is a point-in-time view of a RoleBinding.
type RoleBindingSnapshot struct {
	Name      string   `json:"name"`
	Namespace string   `json:"namespace"`
	RoleRef   string   `json:"roleRef"`
	Subjects  []string `json:"subjects,omitempty"`
}

// ServiceAccountSnapshot is a point-in-time view of a ServiceAccount.
type ServiceAccountSnapshot struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// VolumeClaimSnapshot is a point-in-time view of a PersistentVolumeClaim.
type VolumeClaimSnapshot struct {
	Name         string `json:"name"`
	Namespace    string `json:"namespace"`
	Phase        string `json:"phase"`
	Capacity     string `json:"capacity,omitempty"`
	StorageClass string `json:"storageClass,omitempty"`
	VolumeName   string `json:"volumeName,omitempty"`
}

// VolumeSnapshot is a point-in-time view of a PersistentVolume.
type VolumeSnapshot struct {
	Name     string `json:"name"`
	Phase    string `json:"phase"`
	Capacity string `json:"capacity,omitempty"`
	Claim    string `json:"claim,omitempty"`
}

// StorageClassSnapshot is a point-in-time view of a StorageClass.
type StorageClassSnapshot struct {
	Name        string `json:"name"`
	Provisioner string `json:"provisioner"`
	IsDefault   bool   `json:"isDefault"`
}
