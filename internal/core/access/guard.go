package access

// 画面パスの定義です。
const (
	LoginPath           = "/login"
	AdminHomePath       = "/admin"
	EmployeeHomePath    = "/employee"
	WorkflowBuilderPath = "/admin/workflow-builder"
	EmployeeProfilePath = "/employee/profile"
)

// Outcome はガード判定の種類です。
type Outcome int

const (
	// OutcomeAllow は保護されたコンテンツの表示を許可します。
	OutcomeAllow Outcome = iota
	// OutcomeRedirectLogin は未認証のためログイン画面へ誘導します。
	OutcomeRedirectLogin
	// OutcomeRedirectHome はロール不一致のため利用者自身のホームへ誘導します。
	OutcomeRedirectHome
)

// Decision はガードの判定結果です。Redirect は Allow 以外で設定されます。
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Allowed は表示が許可されたかどうかを返します。
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// HomePath はロールごとのホーム画面を返します。未知のロールはログイン画面になります。
func HomePath(role Role) string {
	switch role {
	case RoleAdmin:
		return AdminHomePath
	case RoleEmployee:
		return EmployeeHomePath
	default:
		return LoginPath
	}
}

// Authorize は (現在の利用者, 必要ロール) からアクセス可否を判定します。
// 状態を持たず、画面遷移のたびに評価されます。
func Authorize(identity *Identity, required Role) Decision {
	if identity == nil || !identity.Role.Valid() {
		return Decision{Outcome: OutcomeRedirectLogin, Redirect: LoginPath}
	}
	if identity.Role != required {
		return Decision{Outcome: OutcomeRedirectHome, Redirect: HomePath(identity.Role)}
	}
	return Decision{Outcome: OutcomeAllow}
}

// AuthorizeAuthenticated はロールを問わずセッションの有無だけを判定します。
func AuthorizeAuthenticated(identity *Identity) Decision {
	if identity == nil || !identity.Role.Valid() {
		return Decision{Outcome: OutcomeRedirectLogin, Redirect: LoginPath}
	}
	return Decision{Outcome: OutcomeAllow}
}

// CanActOn は利用者が指定社員のデータを操作できるかを返します。
func CanActOn(identity *Identity, employeeID string) bool {
	if identity == nil {
		return false
	}
	switch identity.Role {
	case RoleAdmin:
		return true
	case RoleEmployee:
		return identity.ID == employeeID
	default:
		return false
	}
}

// Route は保護された画面とその必要ロールです。
type Route struct {
	Path         string
	RequiredRole Role
}

// Routes は画面ルーティング表です。"/" はログイン画面へ転送されます。
var Routes = []Route{
	{Path: AdminHomePath, RequiredRole: RoleAdmin},
	{Path: WorkflowBuilderPath, RequiredRole: RoleAdmin},
	{Path: EmployeeHomePath, RequiredRole: RoleEmployee},
	{Path: EmployeeProfilePath, RequiredRole: RoleEmployee},
}

// RequiredRoleFor は画面パスの必要ロールを返します。保護対象外なら false です。
func RequiredRoleFor(path string) (Role, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r.RequiredRole, true
		}
	}
	return 0, false
}
