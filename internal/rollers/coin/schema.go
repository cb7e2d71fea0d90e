package coin

import (
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/persist"
)

// Version is the current persisted schema version
const Version = 2

// Migrations upgrades older payloads.
//
//	v2: config.customCoins {id, label, headsLabel, tailsLabel} became
//	    config.coinTypes {id, name, heads, tails}; selectedCoin became
//	    selectedCoinTypeID
func Migrations() []persist.Migration {
	return []persist.Migration{
		{TargetVersion: 2, Transform: renameCustomCoins},
	}
}

func renameCustomCoins(state map[string]any) (map[string]any, error) {
	out, err := persist.EditObject(state, "config", func(cfg map[string]any) error {
		raw, ok := cfg["customCoins"]
		if !ok {
			return nil
		}
		items, ok := raw.([]any)
		if !ok {
			return errors.DataLoss("config.customCoins is not an array")
		}
		coins := make([]any, 0, len(items))
		for i, item := range items {
			c, ok := item.(map[string]any)
			if !ok {
				return errors.DataLossf("config.customCoins[%d] is not an object", i)
			}
			coins = append(coins, map[string]any{
				"id":    c["id"],
				"name":  c["label"],
				"heads": c["headsLabel"],
				"tails": c["tailsLabel"],
			})
		}
		delete(cfg, "customCoins")
		cfg["coinTypes"] = coins
		return nil
	})
	if err != nil {
		return nil, err
	}
	persist.Rename(out, "selectedCoin", "selectedCoinTypeID")
	if _, ok := out["selectedCoinTypeID"]; !ok {
		out["selectedCoinTypeID"] = DefaultCoinTypeID
	}
	return out, nil
}

// Schema returns the validator for the current persisted shape
func Schema() persist.Schema[Persisted] {
	return persist.SchemaFunc[Persisted](decodePersisted)
}

func decodePersisted(raw map[string]any) (Persisted, error) {
	r := persist.NewReader()

	var p Persisted
	if obj := r.Object(raw, "", "config"); obj != nil {
		p.Config.NewResultsOnTop = r.Bool(obj, "config", "newResultsOnTop")
		list := persist.Path("config", "coinTypes")
		items := r.Array(obj, "config", "coinTypes")
		p.Config.CoinTypes = make([]CoinType, 0, len(items))
		for i, item := range items {
			ip := persist.Index(list, i)
			m, ok := item.(map[string]any)
			if !ok {
				r.Builder().Field(ip, "must be an object")
				continue
			}
			p.Config.CoinTypes = append(p.Config.CoinTypes, CoinType{
				ID:    r.String(m, ip, "id"),
				Name:  r.String(m, ip, "name"),
				Heads: r.String(m, ip, "heads"),
				Tails: r.String(m, ip, "tails"),
			})
		}
	}
	p.SelectedCoinTypeID = r.String(raw, "", "selectedCoinTypeID")

	if !r.Builder().HasErrors() {
		p.Validate(r.Builder())
	}
	if err := r.Err(); err != nil {
		return Persisted{}, err
	}
	return p, nil
}
