package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/services"
	"github.com/KirkDiggler/character-sheet/internal/services/skills"
)

type app struct {
	provider *services.Provider
	out      io.Writer
	in       io.Reader
	// roller backs free rolls; random when nil
	roller dice.Roller
}

type command struct {
	usage string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"new":      {"new -name NAME [-str N -dex N -hp N -energy N -bp N]", (*app).cmdNew},
	"list":     {"list", (*app).cmdList},
	"show":     {"show -id ID [-json]", (*app).cmdShow},
	"delete":   {"delete -id ID", (*app).cmdDelete},
	"export":   {"export -id ID [-o FILE]", (*app).cmdExport},
	"import":   {"import [-f FILE]", (*app).cmdImport},
	"add":      {"add -id ID -kind weapon|armor|shield|equipment|consumable JSON", (*app).cmdAdd},
	"remove":   {"remove -id ID -item ITEM", (*app).cmdRemove},
	"equip":    {"equip -id ID -item ITEM [-off]", (*app).cmdEquip},
	"attune":   {"attune -id ID -item ITEM [-off]", (*app).cmdAttune},
	"use":      {"use -id ID -item ITEM", (*app).cmdUse},
	"recharge": {"recharge -id ID -item ITEM", (*app).cmdRecharge},
	"shield":   {"shield -id ID -item ITEM (-damage N | -repair N)", (*app).cmdShield},
	"gold":     {"gold -id ID (-add N | -spend N)", (*app).cmdGold},
	"earn":     {"earn -id ID -points N", (*app).cmdEarn},
	"upgrade":  {"upgrade -id ID -skill dodge|parry|HEFT/TYPE", (*app).cmdUpgrade},
	"roll":     {"roll -id ID -item WEAPON", (*app).cmdRoll},
	"dice":     {"dice NOTATION", (*app).cmdDice},
	"status":   {"status", (*app).cmdStatus},
	"learn":    {"learn -id ID -spell NAME [-forget]", (*app).cmdLearn},
	"note":     {"note -id ID -title TITLE [-body BODY] | -remove NOTE", (*app).cmdNote},
	"settings": {"settings [-url URL] [-key KEY] [-openai KEY]", (*app).cmdSettings},
	"skills":   {"skills -q QUERY [-n N] | skills -index FILE", (*app).cmdSkills},
}

func (a *app) usage() error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: sheet COMMAND [flags]")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
	return errors.New("no command given")
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage()
	}
	cmd, ok := commands[args[0]]
	if !ok {
		_ = a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// load parses the flags, then loads the character named by -id
func (a *app) load(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.String("id", "", "character id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return sheeterr.InvalidArgument("-id is required")
	}
	_, err := a.provider.Sheet.Load(ctx, *id)
	return err
}

// change loads, applies fn and saves
func (a *app) change(ctx context.Context, fs *flag.FlagSet, args []string, fn func() error) error {
	if err := a.load(ctx, fs, args); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return a.provider.Sheet.Save(ctx)
}

func (a *app) cmdNew(ctx context.Context, args []string) error {
	fs := newFlags("new")
	name := fs.String("name", "", "character name")
	str := fs.Int("str", 0, "strength")
	dex := fs.Int("dex", 0, "dexterity")
	hp := fs.Int("hp", 10, "hit points")
	energy := fs.Int("energy", 0, "energy")
	bp := fs.Int("bp", 0, "build points earned")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sheet := a.provider.Sheet
	char, err := sheet.New(ctx, *name)
	if err != nil {
		return err
	}

	// base stats are not a transition; round trip them through import
	char.Base.Strength, char.Base.Dexterity = *str, *dex
	char.Base.HitPoints, char.Base.MaxHitPoints = *hp, *hp
	char.Base.Energy, char.Base.MaxEnergy = *energy, *energy
	char.Base.BuildPoints.Earned = *bp
	data, err := character.Export(char)
	if err != nil {
		return err
	}
	if _, err := sheet.Import(ctx, data); err != nil {
		return err
	}

	if err := sheet.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, char.ID)
	return nil
}

func (a *app) cmdList(ctx context.Context, _ []string) error {
	chars, err := a.provider.Sheet.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHP\tGOLD")
	for _, c := range chars {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\n", c.ID, c.Name, c.Base.HitPoints, c.Base.MaxHitPoints, c.Inventory.Gold)
	}
	return w.Flush()
}

func (a *app) cmdShow(ctx context.Context, args []string) error {
	fs := newFlags("show")
	asJSON := fs.Bool("json", false, "print json")
	if err := a.load(ctx, fs, args); err != nil {
		return err
	}

	summary, err := a.provider.Sheet.Summary()
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t(%s)\n", summary.Name, summary.ID)
	fmt.Fprintf(w, "HP\t%d/%d\n", summary.HitPoints, summary.MaxHitPoints)
	fmt.Fprintf(w, "Energy\t%d/%d\n", summary.Energy, summary.MaxEnergy)
	fmt.Fprintf(w, "Build points\t%d\n", summary.BuildPoints)
	fmt.Fprintf(w, "Evasion\t%d\n", summary.Evasion)
	fmt.Fprintf(w, "Parry\t%d\n", summary.Parry)
	fmt.Fprintf(w, "DR\t%d %s\n", summary.DamageReduction, summary.DamageReductionDie)
	fmt.Fprintf(w, "Threshold\t%d\n", summary.Threshold)
	fmt.Fprintf(w, "Attuned\t%d/3\n", summary.Attuned)
	fmt.Fprintf(w, "Gold\t%d\n", summary.Gold)
	for _, wl := range summary.Weapons {
		mark := " "
		if wl.Equipped {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s to hit, %s%s\n", mark, wl.Name, wl.AttackBonus, wl.Dice, wl.DamageBonus)
	}
	return w.Flush()
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	fs := newFlags("delete")
	id := fs.String("id", "", "character id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.provider.Sheet.Delete(ctx, *id)
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	fs := newFlags("export")
	path := fs.String("o", "", "output file, stdout when empty")
	if err := a.load(ctx, fs, args); err != nil {
		return err
	}

	data, err := a.provider.Sheet.Export()
	if err != nil {
		return err
	}
	if *path == "" {
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
	return os.WriteFile(*path, data, 0o644)
}

func (a *app) cmdImport(ctx context.Context, args []string) error {
	fs := newFlags("import")
	path := fs.String("f", "", "input file, stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if *path == "" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(*path)
	}
	if err != nil {
		return err
	}

	char, err := a.provider.Sheet.Import(ctx, data)
	if err != nil {
		return err
	}
	if err := a.provider.Sheet.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, char.ID)
	return nil
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	fs := newFlags("add")
	kind := fs.String("kind", "", "item kind")
	var itemID string
	err := a.change(ctx, fs, args, func() error {
		doc := strings.Join(fs.Args(), " ")
		if doc == "" {
			return sheeterr.InvalidArgument("item json is required")
		}

		var err error
		sheet := a.provider.Sheet
		switch equipment.ItemType(*kind) {
		case equipment.ItemTypeWeapon:
			var item equipment.Weapon
			if err = decodeItem(doc, &item); err == nil {
				itemID, err = sheet.AddWeapon(&item)
			}
		case equipment.ItemTypeArmor:
			var item equipment.Armor
			if err = decodeItem(doc, &item); err == nil {
				itemID, err = sheet.AddArmor(&item)
			}
		case equipment.ItemTypeShield:
			var item equipment.Shield
			if err = decodeItem(doc, &item); err == nil {
				itemID, err = sheet.AddShield(&item)
			}
		case equipment.ItemTypeEquipment:
			var item equipment.Equipment
			if err = decodeItem(doc, &item); err == nil {
				itemID, err = sheet.AddEquipment(&item)
			}
		case equipment.ItemTypeConsumable:
			var item equipment.Consumable
			if err = decodeItem(doc, &item); err == nil {
				itemID, err = sheet.AddConsumable(&item)
			}
		default:
			return sheeterr.InvalidArgumentf("unknown item kind %q", *kind)
		}
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, itemID)
	return nil
}

func decodeItem(doc string, v any) error {
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return sheeterr.InvalidArgumentf("item json: %v", err)
	}
	return nil
}

func (a *app) cmdRemove(ctx context.Context, args []string) error {
	fs := newFlags("remove")
	item := fs.String("item", "", "item id")
	return a.change(ctx, fs, args, func() error {
		return a.provider.Sheet.RemoveItem(*item)
	})
}

func (a *app) cmdEquip(ctx context.Context, args []string) error {
	fs := newFlags("equip")
	item := fs.String("item", "", "item id")
	off := fs.Bool("off", false, "unequip armor or shield")
	return a.change(ctx, fs, args, func() error {
		sheet := a.provider.Sheet
		char, err := sheet.Current()
		if err != nil {
			return err
		}
		found := char.Inventory.Find(*item)
		if found == nil {
			return sheeterr.NotFoundf("item '%s' not found", *item)
		}

		switch found.GetItemType() {
		case equipment.ItemTypeArmor:
			if *off {
				return sheet.UnequipArmor(*item)
			}
			return sheet.EquipArmor(*item)
		case equipment.ItemTypeShield:
			if *off {
				return sheet.UnequipShield(*item)
			}
			return sheet.EquipShield(*item)
		case equipment.ItemTypeWeapon:
			return a.toggle(found.GetName(), func() (bool, error) { return sheet.ToggleWeapon(*item) })
		case equipment.ItemTypeEquipment:
			return a.toggle(found.GetName(), func() (bool, error) { return sheet.ToggleEquipment(*item) })
		}
		return sheeterr.InvalidArgumentf("%s cannot be equipped", found.GetName())
	})
}

// toggle reports the new state only once the flip succeeded
func (a *app) toggle(name string, flip func() (bool, error)) error {
	on, err := flip()
	if err != nil {
		return err
	}

	state := "unequipped"
	if on {
		state = "equipped"
	}
	fmt.Fprintf(a.out, "%s %s\n", name, state)
	return nil
}

func (a *app) cmdAttune(ctx context.Context, args []string) error {
	fs := newFlags("attune")
	item := fs.String("item", "", "item id")
	off := fs.Bool("off", false, "end attunement")
	return a.change(ctx, fs, args, func() error {
		if *off {
			return a.provider.Sheet.Unattune(*item)
		}
		return a.provider.Sheet.Attune(*item)
	})
}

func (a *app) cmdUse(ctx context.Context, args []string) error {
	fs := newFlags("use")
	item := fs.String("item", "", "item id")
	return a.change(ctx, fs, args, func() error {
		sheet := a.provider.Sheet
		char, err := sheet.Current()
		if err != nil {
			return err
		}
		if found := char.Inventory.Find(*item); found != nil && found.GetItemType() == equipment.ItemTypeEquipment {
			return sheet.UseCharge(*item)
		}
		return sheet.UseConsumable(*item)
	})
}

func (a *app) cmdRecharge(ctx context.Context, args []string) error {
	fs := newFlags("recharge")
	item := fs.String("item", "", "item id")
	return a.change(ctx, fs, args, func() error {
		return a.provider.Sheet.Recharge(*item)
	})
}

func (a *app) cmdShield(ctx context.Context, args []string) error {
	fs := newFlags("shield")
	item := fs.String("item", "", "shield id")
	damage := fs.Int("damage", 0, "durability lost")
	repair := fs.Int("repair", 0, "durability restored")
	return a.change(ctx, fs, args, func() error {
		var (
			durability int
			err        error
		)
		switch {
		case *damage > 0:
			durability, err = a.provider.Sheet.DamageShield(*item, *damage)
		case *repair > 0:
			durability, err = a.provider.Sheet.RepairShield(*item, *repair)
		default:
			return sheeterr.InvalidArgument("-damage or -repair is required")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "durability %d\n", durability)
		return nil
	})
}

func (a *app) cmdGold(ctx context.Context, args []string) error {
	fs := newFlags("gold")
	add := fs.Int("add", 0, "gold gained")
	spend := fs.Int("spend", 0, "gold spent")
	return a.change(ctx, fs, args, func() error {
		if *spend > 0 {
			return a.provider.Sheet.SpendGold(*spend)
		}
		return a.provider.Sheet.AddGold(*add)
	})
}

func (a *app) cmdEarn(ctx context.Context, args []string) error {
	fs := newFlags("earn")
	points := fs.Int("points", 0, "build points earned")
	return a.change(ctx, fs, args, func() error {
		return a.provider.Sheet.EarnPoints(*points)
	})
}

func (a *app) cmdUpgrade(ctx context.Context, args []string) error {
	fs := newFlags("upgrade")
	skill := fs.String("skill", "", "skill to raise")
	return a.change(ctx, fs, args, func() error {
		level, err := a.provider.Sheet.UpgradeSkill(*skill)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s is now level %d\n", *skill, level)
		return nil
	})
}

func (a *app) cmdRoll(ctx context.Context, args []string) error {
	fs := newFlags("roll")
	item := fs.String("item", "", "weapon id")
	if err := a.load(ctx, fs, args); err != nil {
		return err
	}

	result, err := a.provider.Sheet.RollDamage(*item)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, result)
	return nil
}

// cmdDice rolls free notation like 2d6+1, no character needed
func (a *app) cmdDice(_ context.Context, args []string) error {
	if len(args) != 1 {
		return sheeterr.InvalidArgument("dice takes one notation, like 2d6+1")
	}

	count, sides, bonus, err := dice.Parse(args[0])
	if err != nil {
		return sheeterr.WrapWithCode(err, sheeterr.CodeInvalidArgument, "bad dice notation")
	}
	if count > equipment.MaxDiceCount {
		return sheeterr.InvalidArgumentf("cannot roll more than %d dice", equipment.MaxDiceCount)
	}

	roller := a.roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	result, err := roller.Roll(count, sides, bonus)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, result)
	return nil
}

func (a *app) cmdLearn(ctx context.Context, args []string) error {
	fs := newFlags("learn")
	name := fs.String("spell", "", "spell name")
	forget := fs.Bool("forget", false, "forget the spell")
	return a.change(ctx, fs, args, func() error {
		if *forget {
			return a.provider.Sheet.ForgetSpell(*name)
		}
		spell, err := a.provider.Sheet.LearnSpell(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "learned %s (level %d %s)\n", spell.Name, spell.Level, spell.School)
		return nil
	})
}

func (a *app) cmdNote(ctx context.Context, args []string) error {
	fs := newFlags("note")
	title := fs.String("title", "", "note title")
	body := fs.String("body", "", "note body")
	remove := fs.String("remove", "", "note id to remove")
	return a.change(ctx, fs, args, func() error {
		if *remove != "" {
			return a.provider.Sheet.RemoveNote(*remove)
		}
		note, err := a.provider.Sheet.AddNote(*title, *body)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, note.ID)
		return nil
	})
}

// cmdStatus reports whether the hosted backend answers and skill lookup is
// ready
func (a *app) cmdStatus(ctx context.Context, _ []string) error {
	backend := "ok"
	if err := a.provider.Backend.Health(ctx); err != nil {
		backend = err.Error()
	}
	skillsState := "ready"
	if !a.provider.Skills.Ready() {
		skillsState = "not configured"
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "backend\t%s\n", backend)
	fmt.Fprintf(w, "skills\t%s\n", skillsState)
	return w.Flush()
}

func (a *app) cmdSettings(ctx context.Context, args []string) error {
	fs := newFlags("settings")
	url := fs.String("url", "", "backend postgres url")
	key := fs.String("key", "", "backend service key")
	openai := fs.String("openai", "", "openai api key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	current := a.provider.Settings.Get()
	next := current
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			next.SupabaseURL = *url
		case "key":
			next.SupabaseServiceKey = *key
		case "openai":
			next.OpenAIAPIKey = *openai
		}
	})

	if next != current {
		if err := a.provider.Settings.Update(ctx, next); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "url         %s\n", next.SupabaseURL)
	fmt.Fprintf(a.out, "service key %s\n", mask(next.SupabaseServiceKey))
	fmt.Fprintf(a.out, "openai key  %s\n", mask(next.OpenAIAPIKey))
	fmt.Fprintf(a.out, "configured  %t\n", next.Configured())
	return nil
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

func (a *app) cmdSkills(ctx context.Context, args []string) error {
	fs := newFlags("skills")
	query := fs.String("q", "", "what the character is trying to do")
	limit := fs.Int("n", skills.DefaultLimit, "results")
	index := fs.String("index", "", "csv of name,description to index, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *index != "" {
		if err := a.indexSkills(ctx, *index); err != nil {
			return err
		}
		if *query == "" {
			return nil
		}
	}

	found, err := a.provider.Skills.Lookup(ctx, *query, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, s := range found {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n", s.Distance, s.Name, s.Description)
	}
	return w.Flush()
}

func (a *app) indexSkills(ctx context.Context, path string) error {
	var r io.Reader = a.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	list, err := skills.ReadSkills(r)
	if err != nil {
		return err
	}
	for i, skill := range list {
		if err := a.provider.Skills.Index(ctx, skill); err != nil {
			return fmt.Errorf("indexed %d of %d skills: %w", i, len(list), err)
		}
	}
	fmt.Fprintf(a.out, "indexed %d skills\n", len(list))
	return nil
}
