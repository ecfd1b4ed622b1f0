package catalog

// Builtin returns the registry of standard pychain archetypes and modules.
// Definition order here is the stable display order for listings.
func Builtin() *Registry {
	return MustNewRegistry(builtinArchetypes(), builtinModules())
}

func builtinArchetypes() []Archetype {
	return []Archetype{
		{
			ID:          "token",
			DisplayName: "Fungible Token",
			Kind:        KindToken,
			Import:      "Token",
			Parameters: []Param{
				{Name: "name", Label: "Token Name", Type: ParamString, Required: true, InInit: true},
				{Name: "symbol", Label: "Symbol", Type: ParamString, Required: true, InInit: true},
				{Name: "decimals", Label: "Decimals", Type: ParamInt, Default: "18", InInit: true},
				{Name: "initialSupply", Label: "Initial Supply", Type: ParamInt},
			},
		},
		{
			ID:          "nft",
			DisplayName: "NFT Collection",
			Kind:        KindNFT,
			Import:      "NFT",
			Parameters: []Param{
				{Name: "name", Label: "Collection Name", Type: ParamString, Required: true, InInit: true},
				{Name: "symbol", Label: "Symbol", Type: ParamString, Required: true, InInit: true},
			},
		},
		{
			ID:          "vault",
			DisplayName: "Asset Vault",
			Kind:        KindVault,
			Import:      "Vault",
			Parameters: []Param{
				{Name: "name", Label: "Vault Name", Type: ParamString, Required: true, InInit: true},
			},
		},
	}
}

func builtinModules() []Module {
	return []Module{
		{
			ID:                   "ownable",
			DisplayName:          "Ownable",
			Category:             CategoryAccess,
			Conflicts:            []string{"accessControl"},
			CompatibleArchetypes: []string{"token", "nft", "vault"},
			StorageNamespace:     "ownable",
			Import:               "Ownable",
			InitCall:             "Ownable.__init_mixin__(self)",
			Guard:                GuardAccess,
			GuardLine:            "self.only_owner()",
		},
		{
			ID:                   "accessControl",
			DisplayName:          "Access Control",
			Category:             CategoryAccess,
			Conflicts:            []string{"ownable"},
			CompatibleArchetypes: []string{"token", "nft", "vault"},
			StorageNamespace:     "access_control",
			Import:               "AccessControl",
			InitCall:             "AccessControl.__init_mixin__(self)",
			Guard:                GuardAccess,
			GuardLine:            `self.only_role("ADMIN_ROLE")`,
		},
		{
			ID:                   "mintable",
			DisplayName:          "Mintable",
			Category:             CategorySupply,
			CompatibleArchetypes: []string{"token", "nft"},
			StorageNamespace:     "mintable",
			Import:               "Mintable",
			InitCall:             "Mintable.__init_mixin__(self)",
			Methods: []MethodFragment{
				{
					Name:                 "mint",
					Signature:            "mint(self, to: str, amount: int)",
					Doc:                  "Mint new tokens to an address.",
					WantsAccessGuard:     true,
					WantsPauseGuard:      true,
					WantsReentrancyGuard: true,
					Core:                 []string{"self._mint(to, amount)"},
				},
			},
		},
		{
			ID:                   "burnable",
			DisplayName:          "Burnable",
			Category:             CategorySupply,
			CompatibleArchetypes: []string{"token", "nft"},
			StorageNamespace:     "burnable",
			Import:               "Burnable",
			InitCall:             "Burnable.__init_mixin__(self)",
			Methods: []MethodFragment{
				{
					Name:                 "burn",
					Signature:            "burn(self, amount: int)",
					Doc:                  "Burn tokens from the caller's balance.",
					WantsPauseGuard:      true,
					WantsReentrancyGuard: true,
					Core:                 []string{"self._burn(self.msg_sender(), amount)"},
				},
			},
		},
		{
			ID:                   "pausable",
			DisplayName:          "Pausable",
			Category:             CategorySecurity,
			CompatibleArchetypes: []string{"token", "nft", "vault"},
			StorageNamespace:     "pausable",
			Import:               "Pausable",
			InitCall:             "Pausable.__init_mixin__(self)",
			Guard:                GuardPause,
			GuardLine:            "self.when_not_paused()",
			Methods: []MethodFragment{
				{
					Name:             "pause",
					Signature:        "pause(self)",
					Doc:              "Pause all guarded operations.",
					WantsAccessGuard: true,
					Core:             []string{"Pausable.pause(self)"},
				},
				{
					Name:             "unpause",
					Signature:        "unpause(self)",
					Doc:              "Resume guarded operations.",
					WantsAccessGuard: true,
					Core:             []string{"Pausable.unpause(self)"},
				},
			},
		},
		{
			ID:                   "reentrancyGuard",
			DisplayName:          "Reentrancy Guard",
			Category:             CategorySecurity,
			CompatibleArchetypes: []string{"token", "nft", "vault"},
			StorageNamespace:     "reentrancy",
			Import:               "ReentrancyGuard",
			InitCall:             "ReentrancyGuard.__init_mixin__(self)",
			Guard:                GuardReentrancy,
			GuardLine:            "self.nonreentrant()",
		},
	}
}
